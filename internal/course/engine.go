package course

import (
	"context"
	"fmt"

	"github.com/example/ctcourse/pkg/models"
)

// ProgressStore is the persistence surface the engine needs. Implementations
// must make SetCompleted an atomic single-field merge so overlapping requests
// from the same user cannot produce lost updates.
type ProgressStore interface {
	Progress(ctx context.Context, userID string) (models.ProgressRecord, error)
	SetCompleted(ctx context.Context, userID, field string) error
}

// Engine gates module access and records module completion against the
// catalog's prerequisite chain.
type Engine struct {
	catalog *Catalog
	store   ProgressStore
}

// NewEngine creates an engine over the given catalog and store.
func NewEngine(catalog *Catalog, store ProgressStore) *Engine {
	return &Engine{catalog: catalog, store: store}
}

// Catalog returns the engine's module catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Record loads the user's raw completion flags.
func (e *Engine) Record(ctx context.Context, userID string) (models.ProgressRecord, error) {
	record, err := e.store.Progress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return record, nil
}

// Summary computes the user's full progress view.
func (e *Engine) Summary(ctx context.Context, userID string) (ProgressSummary, error) {
	record, err := e.Record(ctx, userID)
	if err != nil {
		return ProgressSummary{}, err
	}
	return ComputeProgress(e.catalog, record), nil
}

// Module resolves a slug and verifies the user may access the module.
// Returns ErrModuleNotFound for an unknown slug and ErrPrerequisiteNotMet
// when the immediate prerequisite is incomplete.
func (e *Engine) Module(ctx context.Context, userID, slug string) (ModuleDefinition, error) {
	mod, ok := e.catalog.BySlug(slug)
	if !ok {
		return ModuleDefinition{}, ErrModuleNotFound
	}
	record, err := e.Record(ctx, userID)
	if err != nil {
		return ModuleDefinition{}, err
	}
	if mod.DependencyField != "" && !record.Completed(mod.DependencyField) {
		return ModuleDefinition{}, ErrPrerequisiteNotMet
	}
	return mod, nil
}

// MarkComplete flips the module's completion flag. Re-marking an already
// complete module is a no-op success. The returned module is the next one in
// catalog order; nil means the course is finished.
func (e *Engine) MarkComplete(ctx context.Context, userID, slug string) (*ModuleDefinition, error) {
	mod, ok := e.catalog.BySlug(slug)
	if !ok {
		return nil, ErrModuleNotFound
	}

	record, err := e.Record(ctx, userID)
	if err != nil {
		return nil, err
	}
	if mod.DependencyField != "" && !record.Completed(mod.DependencyField) {
		return nil, ErrPrerequisiteNotMet
	}

	if !record.Completed(mod.CompletionField) {
		if err := e.store.SetCompleted(ctx, userID, mod.CompletionField); err != nil {
			return nil, fmt.Errorf("mark %s complete: %w", slug, err)
		}
	}

	if next, ok := e.catalog.Next(mod.Order); ok {
		return &next, nil
	}
	return nil, nil
}

// Eligible reports whether the user qualifies for the completion certificate.
func (e *Engine) Eligible(ctx context.Context, userID string) (bool, error) {
	summary, err := e.Summary(ctx, userID)
	if err != nil {
		return false, err
	}
	return CertificateEligible(summary), nil
}
