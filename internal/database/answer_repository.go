package database

import (
	"context"
	"errors"
	"time"

	"github.com/example/ctcourse/pkg/models"
)

// answerCollection holds one project-answer document per user.
const answerCollection = "project_answers"

// AnswerRepository stores per-user project answers as a document with
// field-merge writes, so saving one answer never disturbs another.
type AnswerRepository struct {
	docs *DocumentStore
}

// NewAnswerRepository creates a new repository instance
func NewAnswerRepository(docs *DocumentStore) *AnswerRepository {
	return &AnswerRepository{docs: docs}
}

// Init creates the user's empty answer record. Called once at registration.
func (r *AnswerRepository) Init(ctx context.Context, userID string) error {
	return r.docs.SetFields(ctx, answerCollection, userID, map[string]interface{}{
		"schema_version": models.AnswerSchemaVersion,
	})
}

// Answers loads the user's stored answers. An absent record reads as empty.
func (r *AnswerRepository) Answers(ctx context.Context, userID string) (models.AnswerRecord, error) {
	doc, err := r.docs.GetRecord(ctx, answerCollection, userID)
	if errors.Is(err, ErrNotFound) {
		return models.AnswerRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	return models.AnswerRecordFromDoc(doc), nil
}

// SetAnswers merges the given answer fields into the user's record and stamps
// the last-modified marker. Fields not named are untouched.
func (r *AnswerRepository) SetAnswers(ctx context.Context, userID string, fields map[string]string) error {
	doc := make(map[string]interface{}, len(fields)+1)
	for field, value := range fields {
		doc[field] = value
	}
	doc["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	return r.docs.SetFields(ctx, answerCollection, userID, doc)
}
