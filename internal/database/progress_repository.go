package database

import (
	"context"
	"errors"

	"github.com/example/ctcourse/pkg/models"
)

// progressCollection holds one completion-flag document per user.
const progressCollection = "progress"

// ProgressRepository stores per-user module completion flags as a document
// with field-merge writes.
type ProgressRepository struct {
	docs *DocumentStore
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(docs *DocumentStore) *ProgressRepository {
	return &ProgressRepository{docs: docs}
}

// Init creates the user's progress record with every completion field
// explicitly false. Called once at registration.
func (r *ProgressRepository) Init(ctx context.Context, userID string, completionFields []string) error {
	return r.docs.SetFields(ctx, progressCollection, userID, models.NewProgressDoc(completionFields))
}

// Progress loads the user's completion flags. An absent record reads as all
// false rather than an error.
func (r *ProgressRepository) Progress(ctx context.Context, userID string) (models.ProgressRecord, error) {
	doc, err := r.docs.GetRecord(ctx, progressCollection, userID)
	if errors.Is(err, ErrNotFound) {
		return models.ProgressRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	return models.ProgressRecordFromDoc(doc), nil
}

// SetCompleted flips one completion flag to true. The record must already
// exist; registration guarantees it does.
func (r *ProgressRepository) SetCompleted(ctx context.Context, userID, field string) error {
	return r.docs.UpdateField(ctx, progressCollection, userID, field, true)
}
