// Package storage persists whole record collections as JSON documents.
//
// Every Load and Save moves an entire collection. A missing document is
// created empty, and a document that no longer matches its collection schema
// is reset to empty instead of failing the caller.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrCorruptDocument is returned by decode when a stored document cannot be
// read as its collection.
var ErrCorruptDocument = errors.New("storage: corrupt document")

var emptyDocument = []byte("[]")

// Store reads and writes named collections.
type Store interface {
	// Load decodes the collection into dst, which must be a pointer to a slice.
	Load(ctx context.Context, c Collection, dst any) error

	// Save replaces the stored collection with records.
	Save(ctx context.Context, c Collection, records any) error
}

// Collection names a stored sequence of records and the shape it must have.
type Collection struct {
	Name   string
	schema *jsonschema.Schema
}

const projectsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id": {"type": "string"},
      "title": {"type": "string"},
      "createdAt": {"type": "string"}
    }
  }
}`

const tasksSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id": {"type": "string"},
      "projectId": {"type": "string"},
      "title": {"type": "string"},
      "priority": {"type": "string"},
      "status": {"type": "string"},
      "description": {"type": ["string", "null"]},
      "start": {"type": ["string", "null"]},
      "end": {"type": ["string", "null"]},
      "tags": {"type": ["array", "null"]}
    }
  }
}`

var (
	Projects = Collection{
		Name:   "projects",
		schema: jsonschema.MustCompileString("projects.schema.json", projectsSchema),
	}
	Tasks = Collection{
		Name:   "tasks",
		schema: jsonschema.MustCompileString("tasks.schema.json", tasksSchema),
	}
)

func decode(c Collection, data []byte, dst any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, c.Name, err)
	}
	if c.schema != nil {
		if err := c.schema.Validate(doc); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, c.Name, err)
		}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, c.Name, err)
	}
	return nil
}

func encode(records any) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	if bytes.Equal(data, []byte("null")) {
		return emptyDocument, nil
	}
	return data, nil
}

func reset(dst any) error {
	return json.Unmarshal(emptyDocument, dst)
}
