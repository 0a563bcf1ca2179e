package cuekit

import (
	"encoding/json"
	"testing"
	"time"
)

// cf builds a custom field with a raw JSON value. An empty value string
// leaves the value key absent.
func cf(name, typ, rawValue string) CustomField {
	field := CustomField{ID: "fld_" + name, Name: name, Type: typ}
	if rawValue != "" {
		field.Value = json.RawMessage(rawValue)
	}
	return field
}

func labelsField(name, rawValue string, options ...FieldOption) CustomField {
	field := cf(name, "labels", rawValue)
	field.TypeConfig = &TypeConfig{Options: options}
	return field
}

func dropdownField(name, rawValue string, optionNames ...string) CustomField {
	field := cf(name, "drop_down", rawValue)
	opts := make([]FieldOption, len(optionNames))
	for i, n := range optionNames {
		opts[i] = FieldOption{ID: "opt_" + n, Name: n, OrderIndex: i}
	}
	field.TypeConfig = &TypeConfig{Options: opts}
	return field
}

func recordWithFields(fields ...CustomField) *RawTask {
	return &RawTask{ID: "t1", Name: "task one", CustomFields: fields}
}

func TestResolveFieldValue(t *testing.T) {
	tests := []struct {
		name   string
		record *RawTask
		field  string
		want   fieldValue
	}{
		{
			name:   "undeclared field is missing",
			record: recordWithFields(),
			field:  "Priority",
			want:   missingValue(),
		},
		{
			name:   "declared field without value is unset",
			record: recordWithFields(cf("Priority", "drop_down", "")),
			field:  "Priority",
			want:   unsetValue(),
		},
		{
			name:   "null value is unset",
			record: recordWithFields(cf("Desc", "text", "null")),
			field:  "Desc",
			want:   unsetValue(),
		},
		{
			name:   "text value",
			record: recordWithFields(cf("Desc", "text", `"hello"`)),
			field:  "Desc",
			want:   textValue("hello"),
		},
		{
			name:   "number value",
			record: recordWithFields(cf("EP_NUM", "number", "42")),
			field:  "EP_NUM",
			want:   numberValue(42),
		},
		{
			name:   "quoted number value",
			record: recordWithFields(cf("EP_NUM", "number", `"42.5"`)),
			field:  "EP_NUM",
			want:   numberValue(42.5),
		},
		{
			name:   "dropdown index resolves to option name",
			record: recordWithFields(dropdownField("Priority", "1", "Low", "High")),
			field:  "Priority",
			want:   textValue("High"),
		},
		{
			name:   "dropdown plain string value passes through",
			record: recordWithFields(cf("Priority", "drop_down", `"High"`)),
			field:  "Priority",
			want:   textValue("High"),
		},
		{
			name: "labels resolve through type_config",
			record: recordWithFields(labelsField("Areas", `["id1","id2"]`,
				FieldOption{ID: "id1", Label: "Frontend"},
				FieldOption{ID: "id2", Label: "Backend"},
			)),
			field: "Areas",
			want:  labelsValue([]string{"Frontend", "Backend"}),
		},
		{
			name:   "empty labels selection is present",
			record: recordWithFields(labelsField("Areas", `[]`)),
			field:  "Areas",
			want:   labelsValue([]string{}),
		},
		{
			name:   "date resolves to millis number",
			record: recordWithFields(cf("RECORDING_DATE", "date", `"1700000000000"`)),
			field:  "RECORDING_DATE",
			want:   numberValue(1700000000000),
		},
		{
			name:   "checkbox value",
			record: recordWithFields(cf("Approved", "checkbox", "true")),
			field:  "Approved",
			want:   boolValue(true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveFieldValue(tt.record, tt.field)
			if got.kind != tt.want.kind {
				t.Fatalf("kind = %v, want %v", got.kind, tt.want.kind)
			}
			switch tt.want.kind {
			case kindText:
				if got.text != tt.want.text {
					t.Errorf("text = %q, want %q", got.text, tt.want.text)
				}
			case kindNumber:
				if got.num != tt.want.num {
					t.Errorf("num = %v, want %v", got.num, tt.want.num)
				}
			case kindBool:
				if got.b != tt.want.b {
					t.Errorf("bool = %v, want %v", got.b, tt.want.b)
				}
			case kindLabels:
				if len(got.labels) != len(tt.want.labels) {
					t.Fatalf("labels = %v, want %v", got.labels, tt.want.labels)
				}
				for i := range got.labels {
					if got.labels[i] != tt.want.labels[i] {
						t.Errorf("labels = %v, want %v", got.labels, tt.want.labels)
					}
				}
			}
		})
	}
}

func TestResolveFieldValueFirstMatchWins(t *testing.T) {
	record := recordWithFields(
		cf("Dup", "text", `"first"`),
		cf("Dup", "text", `"second"`),
	)

	got := resolveFieldValue(record, "Dup")
	if got.kind != kindText || got.text != "first" {
		t.Errorf("expected first declaration to win, got %+v", got)
	}
}

func TestTaskField(t *testing.T) {
	task := NewTask(RawTask{
		ID: "t1",
		CustomFields: []CustomField{
			cf("EP_NUM", "number", `"17"`),
			cf("Score", "number", `"4.5"`),
			dropdownField("Priority", "0", "High", "Low"),
			cf("TASK_URL", "url", `"https://example.com/x"`),
			cf("RECORDING_DATE", "date", `"1700000000000"`),
			labelsField("Areas", `["a"]`, FieldOption{ID: "a", Label: "QA"}),
			cf("Empty", "text", ""),
		},
	})

	t.Run("number integral", func(t *testing.T) {
		v, err := task.Field("EP_NUM")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != int64(17) {
			t.Errorf("expected int64(17), got %T %v", v, v)
		}
	})

	t.Run("number fractional", func(t *testing.T) {
		v, err := task.Field("Score")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 4.5 {
			t.Errorf("expected 4.5, got %T %v", v, v)
		}
	})

	t.Run("dropdown", func(t *testing.T) {
		v, err := task.Field("Priority")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "High" {
			t.Errorf("expected High, got %v", v)
		}
	})

	t.Run("url", func(t *testing.T) {
		v, err := task.Field("TASK_URL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "https://example.com/x" {
			t.Errorf("unexpected value %v", v)
		}
	})

	t.Run("date", func(t *testing.T) {
		v, err := task.Field("RECORDING_DATE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ts, ok := v.(time.Time)
		if !ok {
			t.Fatalf("expected time.Time, got %T", v)
		}
		if ts.Year() != 2023 {
			t.Errorf("expected a 2023 timestamp, got %v", ts)
		}
	})

	t.Run("labels", func(t *testing.T) {
		v, err := task.Field("Areas")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names, ok := v.([]string)
		if !ok || len(names) != 1 || names[0] != "QA" {
			t.Errorf("expected [QA], got %v", v)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := task.Field("Nope")
		if !IsMissingField(err) {
			t.Fatalf("expected MissingFieldError, got %v", err)
		}
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := task.Field("Empty")
		if !IsMissingValue(err) {
			t.Fatalf("expected MissingValueError, got %v", err)
		}
	})
}

func TestTaskFieldDateInSeconds(t *testing.T) {
	task := NewTask(RawTask{
		ID: "t1",
		CustomFields: []CustomField{
			// Seconds, not milliseconds: lands in 1970 after conversion.
			cf("RECORDING_DATE", "date", `"1700000000"`),
		},
	})

	_, err := task.Field("RECORDING_DATE")
	if err == nil {
		t.Fatal("expected error for second-resolution timestamp, got nil")
	}
}

func TestTaskFieldNames(t *testing.T) {
	task := NewTask(RawTask{
		CustomFields: []CustomField{
			cf("B", "text", `"x"`),
			cf("A", "text", `"y"`),
		},
	})

	names := task.FieldNames()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Errorf("expected record order [B A], got %v", names)
	}

	typ, err := task.FieldType("A")
	if err != nil || typ != "text" {
		t.Errorf("FieldType(A) = %q, %v", typ, err)
	}

	id, err := task.FieldID("B")
	if err != nil || id != "fld_B" {
		t.Errorf("FieldID(B) = %q, %v", id, err)
	}
}
