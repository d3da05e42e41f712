package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressRecordFromDocMigratesLegacyKeys(t *testing.T) {
	// A version 1 document still carries the original field names.
	doc := map[string]interface{}{
		"schema_version":       float64(1),
		"introducao_concluido": true,
		"abstracao_concluido":  false,
	}

	record := ProgressRecordFromDoc(doc)
	assert.True(t, record.Completed("intro_complete"))
	assert.False(t, record.Completed("abstraction_complete"))
	assert.False(t, record.Completed("introducao_concluido"), "legacy key must not survive migration")
}

func TestProgressRecordFromDocCurrentVersion(t *testing.T) {
	doc := map[string]interface{}{
		"schema_version": float64(ProgressSchemaVersion),
		"intro_complete": true,
	}

	record := ProgressRecordFromDoc(doc)
	assert.True(t, record.Completed("intro_complete"))
	assert.False(t, record.Completed("decomposition_complete"), "missing keys read as false")
}

func TestProgressRecordFromDocNilAndJunk(t *testing.T) {
	assert.Empty(t, ProgressRecordFromDoc(nil))

	// Non-boolean values are bookkeeping, not flags.
	record := ProgressRecordFromDoc(map[string]interface{}{
		"schema_version": float64(2),
		"updated_at":     "2024-05-01T10:00:00Z",
	})
	assert.Empty(t, record)
}

func TestNewProgressDoc(t *testing.T) {
	doc := NewProgressDoc([]string{"a_complete", "b_complete"})

	assert.Equal(t, ProgressSchemaVersion, doc["schema_version"])
	assert.Equal(t, false, doc["a_complete"])
	assert.Equal(t, false, doc["b_complete"])
}

func TestAnswerRecordFromDocMigratesLegacyKeys(t *testing.T) {
	doc := map[string]interface{}{
		"schema_version": float64(1),
		"project_goal":   "Teach loops with dance moves",
		"project_name":   "Classroom robotics project",
		"updated_at":     "2024-05-01T10:00:00Z",
	}

	record := AnswerRecordFromDoc(doc)
	assert.Equal(t, "Teach loops with dance moves", record.Value("project_objective"))
	assert.Equal(t, "Classroom robotics project", record.Value("project_name"))
	assert.Equal(t, "", record.Value("project_goal"))
	assert.Equal(t, "", record.Value("updated_at"), "update stamp is not an answer")
}

func TestAnswerRecordFromDocMissingField(t *testing.T) {
	record := AnswerRecordFromDoc(map[string]interface{}{
		"schema_version": float64(AnswerSchemaVersion),
	})
	assert.Equal(t, "", record.Value("project_name"))
}
