package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/example/ctcourse/internal/auth"
	"github.com/example/ctcourse/internal/certificate"
	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/internal/export"
	"github.com/example/ctcourse/internal/project"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondFailure(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("logout failed", zap.Error(err))
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentUser(r.Context()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update auth.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.UpdateProfile(r.Context(), currentUser(r.Context()).ID, update)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Summary(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Summary(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary.Modules)
}

type moduleResponse struct {
	Module         course.ModuleDefinition `json:"module"`
	Completed      bool                    `json:"is_completed"`
	Answers        map[string]string       `json:"answers,omitempty"`
	ProjectSummary []project.ModuleAnswers `json:"project_summary,omitempty"`
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r.Context()).ID

	mod, err := s.engine.Module(r.Context(), userID, r.PathValue("slug"))
	if err != nil {
		respondFailure(w, err)
		return
	}

	record, err := s.engine.Record(r.Context(), userID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	resp := moduleResponse{Module: mod, Completed: record.Completed(mod.CompletionField)}

	if len(mod.ProjectFields) > 0 {
		resp.Answers, err = s.answers.ModuleFields(r.Context(), userID, mod)
		if err != nil {
			respondFailure(w, err)
			return
		}
	}

	// The final module shows everything answered so far, in course order.
	if mod.Slug == s.engine.Catalog().Summary().Slug {
		resp.ProjectSummary, err = s.answers.Consolidate(r.Context(), userID)
		if err != nil {
			respondFailure(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type submitAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

type submitAnswersResponse struct {
	Message    string `json:"message"`
	NextModule string `json:"next_module,omitempty"`
}

func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r.Context()).ID

	mod, err := s.engine.Module(r.Context(), userID, r.PathValue("slug"))
	if err != nil {
		respondFailure(w, err)
		return
	}
	if len(mod.ProjectFields) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "this module has no project fields")
		return
	}

	var req submitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Only the module's own declared fields are accepted, and only the ones
	// actually sent; partial saves are fine.
	submission := make(map[string]string)
	for _, field := range mod.ProjectFields {
		if value, ok := req.Answers[field]; ok {
			submission[field] = value
		}
	}
	if len(submission) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "no valid project fields were submitted")
		return
	}

	if err := s.answers.SubmitMany(r.Context(), userID, submission); err != nil {
		respondFailure(w, err)
		return
	}

	resp := submitAnswersResponse{Message: "answers saved"}
	if next, ok := s.engine.Catalog().Next(mod.Order); ok {
		resp.NextModule = next.Slug
	}
	respondJSON(w, http.StatusOK, resp)
}

type completeModuleResponse struct {
	Message        string `json:"message"`
	NextModule     string `json:"next_module,omitempty"`
	CourseComplete bool   `json:"course_complete"`
}

func (s *Server) handleCompleteModule(w http.ResponseWriter, r *http.Request) {
	next, err := s.engine.MarkComplete(r.Context(), currentUser(r.Context()).ID, r.PathValue("slug"))
	if err != nil {
		respondFailure(w, err)
		return
	}

	resp := completeModuleResponse{Message: "module completed"}
	if next != nil {
		resp.NextModule = next.Slug
	} else {
		resp.CourseComplete = true
		resp.Message = "module completed, you finished the course"
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.answers.Consolidate(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

type certificateResponse struct {
	Eligible         bool   `json:"eligible"`
	CompletedModules int    `json:"completed_modules"`
	TotalModules     int    `json:"total_modules"`
	IssueDate        string `json:"issue_date"`
}

func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Summary(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, certificateResponse{
		Eligible:         course.CertificateEligible(summary),
		CompletedModules: summary.CompletedModules,
		TotalModules:     summary.TotalModules,
		IssueDate:        time.Now().Format("2006-01-02"),
	})
}

func (s *Server) handleCertificateDownload(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	summary, err := s.engine.Summary(r.Context(), user.ID)
	if err != nil {
		respondFailure(w, err)
		return
	}
	if !course.CertificateEligible(summary) {
		respondError(w, http.StatusForbidden, "you must complete all modules to generate the certificate")
		return
	}

	latex, err := certificate.GenerateLaTeX(user.Name, time.Now(), s.cfg.CourseHours)
	if err != nil {
		respondFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-tex")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment;filename=%s", certificate.Filename(user.Name)))
	_, _ = w.Write([]byte(latex))
}

func (s *Server) handleProgressReport(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.GetAll(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}

	rows := make([]export.ReportRow, 0, len(users))
	for _, user := range users {
		summary, err := s.engine.Summary(r.Context(), user.ID)
		if err != nil {
			respondFailure(w, err)
			return
		}
		rows = append(rows, export.ReportRow{User: user, Summary: summary})
	}

	report, err := export.ProgressReport(s.engine.Catalog(), rows)
	if err != nil {
		respondFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment;filename=progress-report.xlsx")
	if err := report.Write(w); err != nil {
		s.logger.Warn("failed to stream progress report", zap.Error(err))
	}
}
