// Package project persists a user's free-form answers to the end-of-course
// project. Answers accumulate across sessions: every write is a field-level
// merge, so partial submissions are never destructive.
package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/pkg/models"
)

// Placeholder is shown for project fields the user has not answered yet.
const Placeholder = "not yet answered"

var (
	// ErrUnknownField is returned when a field belongs to no catalog module.
	ErrUnknownField = errors.New("unknown project field")
	// ErrAnswerTooShort is returned when a trimmed answer is shorter than the
	// configured minimum. Nothing is written in that case.
	ErrAnswerTooShort = errors.New("answer too short")
)

// AnswerStore is the persistence surface the service needs. SetAnswers must
// be an atomic merge: either every named field is applied or none is, and
// fields not named are never touched.
type AnswerStore interface {
	Answers(ctx context.Context, userID string) (models.AnswerRecord, error)
	SetAnswers(ctx context.Context, userID string, fields map[string]string) error
}

// Completer marks a module complete. Used only when CompleteOnSubmit is set.
type Completer interface {
	MarkComplete(ctx context.Context, userID, slug string) (*course.ModuleDefinition, error)
}

// Config carries the submission policy knobs.
type Config struct {
	// MinAnswerLen is the minimum rune count of a trimmed answer.
	MinAnswerLen int
	// CompleteOnSubmit also flips the owning module's completion flag when an
	// answer is accepted. Off by default; completion normally has its own
	// endpoint.
	CompleteOnSubmit bool
}

// DefaultConfig returns the standard submission policy.
func DefaultConfig() Config {
	return Config{MinAnswerLen: 10}
}

// Service validates and persists project answers and assembles the
// consolidated summary for the final module.
type Service struct {
	catalog   *course.Catalog
	store     AnswerStore
	completer Completer
	cfg       Config
}

// NewService creates an answer service. completer may be nil when
// CompleteOnSubmit is disabled.
func NewService(catalog *course.Catalog, store AnswerStore, completer Completer, cfg Config) *Service {
	return &Service{catalog: catalog, store: store, completer: completer, cfg: cfg}
}

// Submit validates and upserts a single answer field.
func (s *Service) Submit(ctx context.Context, userID, field, value string) error {
	return s.SubmitMany(ctx, userID, map[string]string{field: value})
}

// SubmitMany validates every field first, then applies one atomic merge
// write. A validation failure on any field means nothing is written.
func (s *Service) SubmitMany(ctx context.Context, userID string, fields map[string]string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields submitted", ErrUnknownField)
	}

	trimmed := make(map[string]string, len(fields))
	owners := make(map[string]course.ModuleDefinition)
	for field, value := range fields {
		owner, ok := s.catalog.OwnerOf(field)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		clean := strings.TrimSpace(value)
		if utf8.RuneCountInString(clean) < s.cfg.MinAnswerLen {
			return fmt.Errorf("%w: %s needs at least %d characters", ErrAnswerTooShort, field, s.cfg.MinAnswerLen)
		}
		trimmed[field] = clean
		owners[owner.Slug] = owner
	}

	if err := s.store.SetAnswers(ctx, userID, trimmed); err != nil {
		return fmt.Errorf("save answers: %w", err)
	}

	if s.cfg.CompleteOnSubmit && s.completer != nil {
		for slug := range owners {
			if _, err := s.completer.MarkComplete(ctx, userID, slug); err != nil {
				return fmt.Errorf("complete module %s: %w", slug, err)
			}
		}
	}
	return nil
}

// Load returns the stored answer for a field, or "" when never submitted.
// A missing field is not an error.
func (s *Service) Load(ctx context.Context, userID, field string) (string, error) {
	record, err := s.store.Answers(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load answers: %w", err)
	}
	return record.Value(field), nil
}

// ModuleFields returns the stored answers for one module's declared fields,
// used to prefill that module's form. Missing fields read as "".
func (s *Service) ModuleFields(ctx context.Context, userID string, mod course.ModuleDefinition) (map[string]string, error) {
	record, err := s.store.Answers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	fields := make(map[string]string, len(mod.ProjectFields))
	for _, field := range mod.ProjectFields {
		fields[field] = record.Value(field)
	}
	return fields, nil
}

// AnswerField is one labelled answer in the consolidated summary.
type AnswerField struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ModuleAnswers groups a module's answers for the final summary view.
type ModuleAnswers struct {
	Title  string        `json:"title"`
	Slug   string        `json:"slug"`
	Fields []AnswerField `json:"fields"`
	Saved  bool          `json:"is_saved"`
}

// Consolidate assembles every module's answers in catalog order. Modules that
// declare no project fields are skipped, as is the final summary module.
// Unanswered fields carry the placeholder. Pure read; safe to repeat.
func (s *Service) Consolidate(ctx context.Context, userID string) ([]ModuleAnswers, error) {
	record, err := s.store.Answers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}

	summarySlug := s.catalog.Summary().Slug
	var out []ModuleAnswers
	for _, mod := range s.catalog.Modules() {
		if mod.Slug == summarySlug || len(mod.ProjectFields) == 0 {
			continue
		}

		group := ModuleAnswers{Title: mod.Title, Slug: mod.Slug}
		for _, field := range mod.ProjectFields {
			value := record.Value(field)
			if value == "" {
				value = Placeholder
			} else {
				group.Saved = true
			}
			group.Fields = append(group.Fields, AnswerField{
				Field: field,
				Label: humanizeLabel(field),
				Value: value,
			})
		}
		out = append(out, group)
	}
	return out, nil
}

// humanizeLabel turns an answer field key into a display label:
// "project_pattern_optimization" -> "Pattern optimization".
func humanizeLabel(field string) string {
	label := strings.TrimPrefix(field, "project_")
	label = strings.ReplaceAll(label, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
