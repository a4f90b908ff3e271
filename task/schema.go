package task

import (
	"encoding/json"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaJSON describes the on-disk task array. It lives next to the
// tolerant loader so `due check` and the decoder agree on what a record
// is: check requires the fields the loader would otherwise substitute
// defaults for to at least have the right types.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "type": {"enum": ["deadline", "task", "DeadlineTask", ""]},
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "category": {"type": "string"},
      "completed": {"type": "boolean"},
      "created_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
      "deadline": {"type": "string", "pattern": "^(\\d{2}-\\d{2}-\\d{4})?$"}
    },
    "required": ["id", "title", "created_date"]
  }
}`

var fileSchema = jsonschema.MustCompileString("tasks.schema.json", schemaJSON)

// VerifyFile checks that the file at path is a well-formed task array
// with unique ids. It reports problems the tolerant loader would paper
// over; it never repairs anything. A missing file is an error here, the
// loader treats it as an empty store.
func VerifyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tasks file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if err := fileSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	seen := make(map[int]bool, len(records))
	for i, rec := range records {
		if seen[rec.ID] {
			return fmt.Errorf("%w: record %d: duplicate id %d", ErrCorruptFile, i, rec.ID)
		}
		seen[rec.ID] = true
	}
	return nil
}
