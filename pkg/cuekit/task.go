package cuekit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Task is a read-only view over one raw task record. Views over the same
// record are cheap; all accessors are pure lookups into the record.
type Task struct {
	raw            RawTask
	subtasksLoaded bool
}

// NewTask wraps a raw record in a task view. Subtask access is enabled when
// the record carries a subtasks array (even an empty one).
func NewTask(raw RawTask) *Task {
	return &Task{raw: raw, subtasksLoaded: raw.Subtasks != nil}
}

// ID returns the task identifier.
func (t *Task) ID() string { return t.raw.ID }

// Name returns the task name.
func (t *Task) Name() string { return t.raw.Name }

// StatusName returns the task's status string.
func (t *Task) StatusName() string { return t.raw.Status.Status }

// CreatorName returns the username of the task's creator.
func (t *Task) CreatorName() string { return t.raw.Creator.Username }

// TagNames returns the names of the task's tags in record order.
func (t *Task) TagNames() []string {
	names := make([]string, 0, len(t.raw.Tags))
	for _, tag := range t.raw.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// Created returns the task creation time, or the zero time if the record
// carries no parseable creation timestamp.
func (t *Task) Created() time.Time {
	return parseRecordTime(t.raw.DateCreated)
}

// Updated returns the last update time, or the zero time if the record
// carries no parseable update timestamp.
func (t *Task) Updated() time.Time {
	return parseRecordTime(t.raw.DateUpdated)
}

func parseRecordTime(ms string) time.Time {
	n, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return time.Time{}
	}
	ts, err := millisToTime(n)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Raw returns the underlying record. Treat it as read-only.
func (t *Task) Raw() *RawTask { return &t.raw }

// FieldNames returns the names of all declared custom fields in record order.
func (t *Task) FieldNames() []string {
	names := make([]string, 0, len(t.raw.CustomFields))
	for _, cf := range t.raw.CustomFields {
		names = append(names, cf.Name)
	}
	return names
}

// FieldType returns the declared type of a named custom field.
func (t *Task) FieldType(name string) (string, error) {
	cf, ok := findCustomField(t.raw.CustomFields, name)
	if !ok {
		return "", &MissingFieldError{Field: name, Available: t.FieldNames()}
	}
	return cf.Type, nil
}

// FieldID returns the API identifier of a named custom field, as needed by
// Client.SetCustomField.
func (t *Task) FieldID(name string) (string, error) {
	cf, ok := findCustomField(t.raw.CustomFields, name)
	if !ok {
		return "", &MissingFieldError{Field: name, Available: t.FieldNames()}
	}
	return cf.ID, nil
}

// Field resolves a named custom field to a typed Go value:
//
//	number       int64 when integral, float64 otherwise
//	drop_down    the selected option's name (string)
//	text, short_text, url
//	             string
//	date         time.Time
//	labels       []string of resolved label names (may be empty)
//	tasks        []TaskRef, unwrapped to a single TaskRef when len is 1
//	attachment   []Attachment
//	checkbox     bool
//
// It returns *MissingFieldError when the field is undeclared and
// *MissingValueError when it is declared without a usable value.
func (t *Task) Field(name string) (any, error) {
	cf, ok := findCustomField(t.raw.CustomFields, name)
	if !ok {
		return nil, &MissingFieldError{Field: name, Available: t.FieldNames()}
	}

	switch cf.Type {
	case "number":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		if s, ok := rawString(cf.Value); ok {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return i, nil
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, nil
			}
			return nil, fmt.Errorf("cannot parse %q as a number for field %q", s, name)
		}
		if i, ok := rawInt(cf.Value); ok {
			return i, nil
		}
		if f, ok := rawFloat(cf.Value); ok {
			return f, nil
		}
		return nil, fmt.Errorf("cannot parse value of number field %q", name)

	case "drop_down":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		sel, ok := dropdownName(cf)
		if !ok {
			return nil, &MissingValueError{Field: name}
		}
		return sel, nil

	case "text", "short_text", "url":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		s, ok := rawString(cf.Value)
		if !ok {
			return nil, fmt.Errorf("value of %s field %q is not a string", cf.Type, name)
		}
		return s, nil

	case "date":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		ms, ok := rawFloat(cf.Value)
		if !ok {
			return nil, fmt.Errorf("cannot parse value of date field %q as a timestamp", name)
		}
		return millisToTime(int64(ms))

	case "labels":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		names, ok := labelNames(cf)
		if !ok {
			return nil, fmt.Errorf("cannot parse value of labels field %q", name)
		}
		return names, nil

	case "tasks":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		var refs []TaskRef
		if err := unmarshalField(cf.Value, &refs, name); err != nil {
			return nil, err
		}
		if len(refs) == 1 {
			return refs[0], nil
		}
		return refs, nil

	case "attachment":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		var atts []Attachment
		if err := unmarshalField(cf.Value, &atts, name); err != nil {
			return nil, err
		}
		return atts, nil

	case "checkbox":
		if !hasRawValue(cf) {
			return nil, &MissingValueError{Field: name}
		}
		b, ok := rawBool(cf.Value)
		if !ok {
			return nil, fmt.Errorf("cannot parse value of checkbox field %q", name)
		}
		return b, nil

	default:
		return nil, fmt.Errorf("no accessor for custom field type %q", cf.Type)
	}
}

// Subtasks returns the task's embedded subtask records. It fails with
// ErrSubtasksNotLoaded when the task was fetched without subtask inclusion;
// a task that was fetched with inclusion but has no subtasks returns an
// empty slice.
func (t *Task) Subtasks() ([]RawTask, error) {
	if !t.subtasksLoaded {
		return nil, ErrSubtasksNotLoaded
	}
	out := make([]RawTask, len(t.raw.Subtasks))
	copy(out, t.raw.Subtasks)
	return out, nil
}

// FilteredSubtasks returns the subtask records for which every filter
// matches. Like Subtasks it requires the task to have been fetched with
// subtask inclusion. A record with an absent or valueless field is included
// or excluded per the operator's missing-data policy, never an error; only a
// malformed regex filter fails.
func (t *Task) FilteredSubtasks(filters ...CustomFieldFilter) ([]RawTask, error) {
	if !t.subtasksLoaded {
		return nil, ErrSubtasksNotLoaded
	}

	matched := make([]RawTask, 0, len(t.raw.Subtasks))
	for _, sub := range t.raw.Subtasks {
		ok, err := matchAll(&sub, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, sub)
		}
	}
	return matched, nil
}

func unmarshalField(v json.RawMessage, out any, name string) error {
	if err := json.Unmarshal(v, out); err != nil {
		return fmt.Errorf("cannot parse value of field %q: %w", name, err)
	}
	return nil
}

// matchAll reports whether every filter matches the record (vacuously true
// for an empty filter list).
func matchAll(raw *RawTask, filters []CustomFieldFilter) (bool, error) {
	for _, f := range filters {
		ok, err := f.Match(raw)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
