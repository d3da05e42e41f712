package models

// ProgressSchemaVersion is the current shape of a stored progress record.
// Version 1 records used the Portuguese field names of early releases and are
// renamed on read by ProgressRecordFromDoc.
const ProgressSchemaVersion = 2

// ProgressRecord maps a module's completion field to whether the user has
// completed that module. Missing fields read as false. Flags only ever flip
// false to true.
type ProgressRecord map[string]bool

// Completed returns the flag for the given completion field, defaulting to false.
func (r ProgressRecord) Completed(field string) bool {
	return r[field]
}

// legacyProgressKeys maps version 1 field names to their current names.
var legacyProgressKeys = map[string]string{
	"introducao_concluido":             "intro_complete",
	"decomposicao_concluido":           "decomposition_complete",
	"reconhecimento_padroes_concluido": "pattern_recognition_complete",
	"abstracao_concluido":              "abstraction_complete",
	"algoritmo_concluido":              "algorithms_complete",
	"projeto_final_concluido":          "final_project_complete",
}

// ProgressRecordFromDoc converts a raw document into a ProgressRecord,
// migrating legacy field names when the stored schema version predates the
// current one. Migration happens once, at read time; business logic never
// sees legacy keys.
func ProgressRecordFromDoc(doc map[string]interface{}) ProgressRecord {
	record := make(ProgressRecord)
	if doc == nil {
		return record
	}

	version := 0
	if v, ok := doc["schema_version"].(float64); ok {
		version = int(v)
	}

	for key, value := range doc {
		flag, ok := value.(bool)
		if !ok {
			continue
		}
		if version < ProgressSchemaVersion {
			if renamed, ok := legacyProgressKeys[key]; ok {
				key = renamed
			}
		}
		record[key] = flag
	}
	return record
}

// NewProgressDoc builds the initial stored document for a user: every
// completion field explicitly false, stamped with the current schema version.
func NewProgressDoc(completionFields []string) map[string]interface{} {
	doc := map[string]interface{}{"schema_version": ProgressSchemaVersion}
	for _, field := range completionFields {
		doc[field] = false
	}
	return doc
}
