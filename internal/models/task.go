package models

import (
	"bytes"
	"encoding/json"
)

// TaskStatus is the board column of a task.
type TaskStatus string

const (
	TaskStatusTodo         TaskStatus = "todo"
	TaskStatusInProcess    TaskStatus = "in_process"
	TaskStatusUnderTesting TaskStatus = "under_testing"
	TaskStatusDone         TaskStatus = "done"
)

// TaskStatuses lists every board column in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProcess,
	TaskStatusUnderTesting,
	TaskStatusDone,
}

// TaskPriority ranks a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
}

// Task is a card on the board, bound to one project.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	Title       string       `json:"title"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Description string       `json:"description,omitempty"`
	Start       string       `json:"start,omitempty"`
	End         string       `json:"end,omitempty"`
	Tags        Tags         `json:"tags,omitempty"`
}

// Tags is an ordered list of labels. Decoding accepts any JSON array;
// elements that are not strings are kept as their compact JSON text.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*t = nil
		return nil
	}

	tags := make(Tags, 0, len(raw))
	for _, item := range raw {
		if item = bytes.TrimSpace(item); len(item) > 0 && item[0] == '"' {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			tags = append(tags, s)
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, item); err != nil {
			return err
		}
		tags = append(tags, buf.String())
	}
	*t = tags
	return nil
}
