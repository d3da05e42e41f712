// Package certificate renders the course completion certificate as a LaTeX
// document served for download. Eligibility is decided by the progress
// engine; this package only formats.
package certificate

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// CourseTitle is printed on every certificate.
const CourseTitle = "Computational Thinking for Teachers"

var latexTemplate = template.Must(template.New("certificate").Parse(`\documentclass{article}
\usepackage{geometry}
\usepackage[utf8]{inputenc}
\geometry{a4paper, margin=1in}
\begin{document}
\centering
{\Huge Certificate of Completion} \\
\vspace{0.5cm}
This document certifies that
\vspace{0.5cm}
{\Huge\bfseries {{.Name}}} \\
\vspace{0.5cm}
successfully completed the course "{{.Course}}", with a workload of {{.Hours}} hours, on {{.Date}}.
\end{document}
`))

// GenerateLaTeX produces the certificate source for a student. The name is
// uppercased for display, matching the issued paper certificates.
func GenerateLaTeX(studentName string, issuedAt time.Time, hours int) (string, error) {
	var out strings.Builder
	err := latexTemplate.Execute(&out, struct {
		Name   string
		Course string
		Hours  int
		Date   string
	}{
		Name:   strings.ToUpper(studentName),
		Course: CourseTitle,
		Hours:  hours,
		Date:   issuedAt.Format("January 2, 2006"),
	})
	if err != nil {
		return "", fmt.Errorf("render certificate: %w", err)
	}
	return out.String(), nil
}

// Filename returns the download filename for a student's certificate.
func Filename(studentName string) string {
	name := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(studentName)), " ", "_")
	return fmt.Sprintf("Certificate_%s.tex", name)
}
