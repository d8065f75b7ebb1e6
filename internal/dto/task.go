package dto

import (
	"encoding/json"

	"github.com/yukikurage/kanban-api/internal/models"
	"github.com/yukikurage/kanban-api/internal/validation"
)

// TaskPayload is a decoded create or update body. Keys that are absent are
// left untouched on merge, which a typed struct cannot tell apart from null.
type TaskPayload map[string]any

// ApplyTo shallow-merges the known task fields of the payload onto task.
// The payload must have passed validation. id and projectId are not merged.
func (p TaskPayload) ApplyTo(task *models.Task) {
	if v, ok := p[validation.FieldTitle].(string); ok {
		task.Title = v
	}
	if v, ok := p[validation.FieldPriority].(string); ok {
		task.Priority = models.TaskPriority(v)
	}
	if v, ok := p[validation.FieldStatus].(string); ok {
		task.Status = models.TaskStatus(v)
	}
	p.applyString(validation.FieldDescription, &task.Description)
	p.applyString(validation.FieldStart, &task.Start)
	p.applyString(validation.FieldEnd, &task.End)

	if raw, ok := p[validation.FieldTags]; ok {
		task.Tags = tagList(raw)
	}
}

func (p TaskPayload) applyString(field string, dst *string) {
	raw, ok := p[field]
	if !ok {
		return
	}
	if raw == nil {
		*dst = ""
		return
	}
	if v, ok := raw.(string); ok {
		*dst = v
	}
}

func tagList(raw any) models.Tags {
	switch v := raw.(type) {
	case []string:
		return append(models.Tags(nil), v...)
	case []any:
		// Elements are not validated; models.Tags keeps non-strings as JSON text.
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var tags models.Tags
		if err := json.Unmarshal(data, &tags); err != nil {
			return nil
		}
		return tags
	default:
		return nil
	}
}
