package course

import "github.com/example/ctcourse/pkg/models"

// ModuleStatus is the per-module view of a user's progress.
type ModuleStatus struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Order       int    `json:"order"`
	Unlocked    bool   `json:"is_unlocked"`
	Completed   bool   `json:"is_completed"`
	Lessons     int    `json:"lessons"`
	Exercises   int    `json:"exercises"`
}

// ProgressSummary aggregates a user's completion state across the catalog.
type ProgressSummary struct {
	Modules            []ModuleStatus `json:"modules"`
	CompletedModules   int            `json:"completed_modules"`
	TotalModules       int            `json:"total_modules"`
	OverallPercent     int            `json:"overall_percent"`
	CompletedLessons   int            `json:"completed_lessons"`
	TotalLessons       int            `json:"total_lessons"`
	CompletedExercises int            `json:"completed_exercises"`
	TotalExercises     int            `json:"total_exercises"`
}

// ComputeProgress derives the full progress view from a user's completion
// flags. It is a pure function of its inputs.
//
// A module is unlocked when its immediate prerequisite is complete; the chain
// is not re-verified transitively. Flipping flags out of order can therefore
// unlock a later module while an earlier one is incomplete, which matches the
// soft gating the course has always used.
func ComputeProgress(catalog *Catalog, record models.ProgressRecord) ProgressSummary {
	summary := ProgressSummary{TotalModules: catalog.Len()}

	for _, mod := range catalog.Modules() {
		completed := record.Completed(mod.CompletionField)
		unlocked := mod.DependencyField == "" || record.Completed(mod.DependencyField)

		if completed {
			summary.CompletedModules++
			summary.CompletedLessons += mod.Lessons
			summary.CompletedExercises += mod.Exercises
		}
		summary.TotalLessons += mod.Lessons
		summary.TotalExercises += mod.Exercises

		summary.Modules = append(summary.Modules, ModuleStatus{
			Title:       mod.Title,
			Description: mod.Description,
			Slug:        mod.Slug,
			Order:       mod.Order,
			Unlocked:    unlocked,
			Completed:   completed,
			Lessons:     mod.Lessons,
			Exercises:   mod.Exercises,
		})
	}

	if summary.TotalModules > 0 {
		// Integer truncation, not rounding: 1 of 6 is 16, not 17.
		summary.OverallPercent = summary.CompletedModules * 100 / summary.TotalModules
	}
	return summary
}

// CertificateEligible reports whether the summary qualifies for a completion
// certificate. The module count is compared directly rather than going
// through the truncated percent.
func CertificateEligible(summary ProgressSummary) bool {
	return summary.TotalModules > 0 && summary.CompletedModules == summary.TotalModules
}
