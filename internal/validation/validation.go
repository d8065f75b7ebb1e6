// Package validation holds the field rules shared by task and project
// creation and partial update. Every rule is a pure function over a decoded
// JSON payload.
package validation

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/kanban-api/internal/errors"
	"github.com/yukikurage/kanban-api/internal/models"
)

// Payload field names
const (
	FieldProjectID   = "projectId"
	FieldTitle       = "title"
	FieldPriority    = "priority"
	FieldStatus      = "status"
	FieldDescription = "description"
	FieldStart       = "start"
	FieldEnd         = "end"
	FieldTags        = "tags"
)

type rule struct {
	field string
	check func(value any, present bool) error
}

var taskRules = []rule{
	{FieldTitle, checkTitle},
	{FieldPriority, checkPriority},
	{FieldStatus, checkStatus},
	{FieldTags, checkTags},
	{FieldDescription, optionalString(FieldDescription)},
	{FieldStart, optionalString(FieldStart)},
	{FieldEnd, optionalString(FieldEnd)},
}

// ValidateTaskCreate applies every task rule to a creation payload.
func ValidateTaskCreate(fields map[string]any) error {
	for _, r := range taskRules {
		value, present := fields[r.field]
		if err := r.check(value, present); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTaskUpdate applies only the rules whose field is present in the payload.
func ValidateTaskUpdate(fields map[string]any) error {
	for _, r := range taskRules {
		value, present := fields[r.field]
		if !present {
			continue
		}
		if err := r.check(value, true); err != nil {
			return err
		}
	}
	return nil
}

// ProjectReference extracts the projectId of a payload.
// A null or empty reference counts as absent.
func ProjectReference(fields map[string]any) (string, bool, error) {
	value, present := fields[FieldProjectID]
	if !present || value == nil {
		return "", false, nil
	}
	id, ok := value.(string)
	if !ok {
		return "", true, apierrors.NewInvalidField(FieldProjectID, "projectId must be a string")
	}
	if id == "" {
		return "", false, nil
	}
	return id, true, nil
}

// NormalizeProjectTitle trims a project title and rejects an empty result.
func NormalizeProjectTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if validate().Var(title, "required") != nil {
		return "", apierrors.NewMissingField(FieldTitle, "Title is required")
	}
	return title, nil
}

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p string) bool {
	return validate().Var(p, priorityTag) == nil
}

// IsValidStatus reports whether s is a known board status.
func IsValidStatus(s string) bool {
	return validate().Var(s, statusTag) == nil
}

// validate returns the validator gin uses for request binding.
func validate() *validator.Validate {
	return binding.Validator.Engine().(*validator.Validate)
}

func oneOf[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return "required,oneof=" + strings.Join(names, " ")
}

var (
	priorityTag = oneOf(models.TaskPriorities)
	statusTag   = oneOf(models.TaskStatuses)
)

func checkTitle(value any, present bool) error {
	title, ok := value.(string)
	if !present || !ok || validate().Var(title, "required") != nil {
		return apierrors.NewInvalidField(FieldTitle, "Title is required")
	}
	return nil
}

func checkPriority(value any, _ bool) error {
	priority, ok := value.(string)
	if !ok || validate().Var(priority, priorityTag) != nil {
		return apierrors.NewInvalidField(FieldPriority, "Priority must be Low, Medium, or High")
	}
	return nil
}

func checkStatus(value any, _ bool) error {
	status, ok := value.(string)
	if !ok || validate().Var(status, statusTag) != nil {
		return apierrors.NewInvalidField(FieldStatus, "Status must be one of todo, in_process, under_testing, done")
	}
	return nil
}

func checkTags(value any, present bool) error {
	if !present || value == nil {
		return nil
	}
	switch value.(type) {
	case []any, []string:
		return nil
	default:
		return apierrors.NewInvalidField(FieldTags, "Tags must be an array of strings")
	}
}

func optionalString(field string) func(any, bool) error {
	return func(value any, present bool) error {
		if !present || value == nil {
			return nil
		}
		if _, ok := value.(string); !ok {
			return apierrors.NewInvalidField(field, field+" must be a string")
		}
		return nil
	}
}
