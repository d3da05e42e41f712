package models

// AnswerSchemaVersion is the current shape of a stored project-answer record.
// Version 1 records named the objective field "project_goal".
const AnswerSchemaVersion = 2

// AnswerRecord maps a project answer field to the latest submitted value.
// Fields are independently upsertable; writing one never touches another.
type AnswerRecord map[string]string

// Value returns the stored answer for field, or "" if never submitted.
func (r AnswerRecord) Value(field string) string {
	return r[field]
}

// legacyAnswerKeys maps version 1 field names to their current names.
var legacyAnswerKeys = map[string]string{
	"project_goal": "project_objective",
}

// AnswerRecordFromDoc converts a raw document into an AnswerRecord, migrating
// legacy field names at read time. Bookkeeping fields (schema version, update
// stamps) are dropped.
func AnswerRecordFromDoc(doc map[string]interface{}) AnswerRecord {
	record := make(AnswerRecord)
	if doc == nil {
		return record
	}

	version := 0
	if v, ok := doc["schema_version"].(float64); ok {
		version = int(v)
	}

	for key, value := range doc {
		text, ok := value.(string)
		if !ok || key == "updated_at" {
			continue
		}
		if version < AnswerSchemaVersion {
			if renamed, ok := legacyAnswerKeys[key]; ok {
				key = renamed
			}
		}
		record[key] = text
	}
	return record
}
