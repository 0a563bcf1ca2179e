package cuekit

import (
	"strings"
	"testing"
)

func mustMatch(t *testing.T, f CustomFieldFilter, raw *RawTask) bool {
	t.Helper()
	ok, err := f.Match(raw)
	if err != nil {
		t.Fatalf("unexpected error evaluating %s on %q: %v", f.Operator, f.FieldName, err)
	}
	return ok
}

func TestMatchEquals(t *testing.T) {
	record := recordWithFields(dropdownField("Priority", "0", "High", "Low"))

	tests := []struct {
		name string
		f    CustomFieldFilter
		want bool
	}{
		{
			name: "dropdown equals selected option",
			f:    CustomFieldFilter{FieldName: "Priority", Operator: OpEquals, Value: "High"},
			want: true,
		},
		{
			name: "dropdown does not equal other option",
			f:    CustomFieldFilter{FieldName: "Priority", Operator: OpEquals, Value: "Low"},
			want: false,
		},
		{
			name: "equals on undeclared field is false",
			f:    CustomFieldFilter{FieldName: "Nope", Operator: OpEquals, Value: "x"},
			want: false,
		},
		{
			name: "not_equals on undeclared field is true",
			f:    CustomFieldFilter{FieldName: "Nope", Operator: OpNotEquals, Value: "x"},
			want: true,
		},
		{
			name: "not_equals on mismatching value is true",
			f:    CustomFieldFilter{FieldName: "Priority", Operator: OpNotEquals, Value: "Low"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustMatch(t, tt.f, record); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchNumericComparisons(t *testing.T) {
	record := recordWithFields(
		cf("EP_NUM", "number", `"100"`),
		cf("Desc", "text", `"not a number"`),
	)

	tests := []struct {
		name string
		f    CustomFieldFilter
		want bool
	}{
		{"gt true", CustomFieldFilter{"EP_NUM", OpGreaterThan, 99}, true},
		{"gt false on equal", CustomFieldFilter{"EP_NUM", OpGreaterThan, 100}, false},
		{"gte true on equal", CustomFieldFilter{"EP_NUM", OpGreaterThanOrEqual, 100}, true},
		{"lt true", CustomFieldFilter{"EP_NUM", OpLessThan, 101}, true},
		{"lte false", CustomFieldFilter{"EP_NUM", OpLessThanOrEqual, 99}, false},
		{"string comparison value", CustomFieldFilter{"EP_NUM", OpGreaterThan, "50"}, true},
		{"non-numeric field is false", CustomFieldFilter{"Desc", OpGreaterThan, 1}, false},
		{"missing field is false", CustomFieldFilter{"Nope", OpLessThan, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustMatch(t, tt.f, record); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchTextOperators(t *testing.T) {
	record := recordWithFields(cf("Desc", "text", `"Contains URGENT issue"`))

	tests := []struct {
		name string
		f    CustomFieldFilter
		want bool
	}{
		{"contains is case-insensitive", CustomFieldFilter{"Desc", OpContains, "urgent"}, true},
		{"contains miss", CustomFieldFilter{"Desc", OpContains, "resolved"}, false},
		{"starts_with is case-insensitive", CustomFieldFilter{"Desc", OpStartsWith, "conTAINS"}, true},
		{"starts_with miss", CustomFieldFilter{"Desc", OpStartsWith, "URGENT"}, false},
		{"regex matches anywhere", CustomFieldFilter{"Desc", OpRegex, "URGENT.*issue"}, true},
		{"regex stays case-sensitive", CustomFieldFilter{"Desc", OpRegex, "urgent"}, false},
		{"contains on missing field", CustomFieldFilter{"Nope", OpContains, "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustMatch(t, tt.f, record); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchRegexMalformedPattern(t *testing.T) {
	record := recordWithFields(cf("Desc", "text", `"hello"`))

	f := CustomFieldFilter{FieldName: "Desc", Operator: OpRegex, Value: "("}
	if _, err := f.Match(record); err == nil {
		t.Fatal("expected error for malformed pattern, got nil")
	}

	// The pattern error surfaces even when the field is absent, so a typo
	// cannot silently exclude every record.
	f = CustomFieldFilter{FieldName: "Nope", Operator: OpRegex, Value: "("}
	if _, err := f.Match(record); err == nil {
		t.Fatal("expected error for malformed pattern on missing field, got nil")
	}
}

func TestMatchIn(t *testing.T) {
	record := recordWithFields(
		labelsField("Areas", `["f","b"]`,
			FieldOption{ID: "f", Label: "Frontend"},
			FieldOption{ID: "b", Label: "Backend"},
		),
		dropdownField("Priority", "1", "Low", "High"),
		cf("EP_NUM", "number", "7"),
	)

	tests := []struct {
		name string
		f    CustomFieldFilter
		want bool
	}{
		{
			name: "labels intersect candidate set",
			f:    CustomFieldFilter{"Areas", OpIn, []string{"Backend", "QA"}},
			want: true,
		},
		{
			name: "labels disjoint from candidate set",
			f:    CustomFieldFilter{"Areas", OpIn, []string{"QA", "Docs"}},
			want: false,
		},
		{
			name: "scalar membership",
			f:    CustomFieldFilter{"Priority", OpIn, []string{"High", "Critical"}},
			want: true,
		},
		{
			name: "scalar non-membership",
			f:    CustomFieldFilter{"Priority", OpIn, []string{"Low"}},
			want: false,
		},
		{
			name: "numeric membership",
			f:    CustomFieldFilter{"EP_NUM", OpIn, []int{5, 7}},
			want: true,
		},
		{
			name: "missing field is false",
			f:    CustomFieldFilter{"Nope", OpIn, []string{"x"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustMatch(t, tt.f, record); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSetComplement(t *testing.T) {
	records := []*RawTask{
		recordWithFields(),
		recordWithFields(cf("F", "text", "")),
		recordWithFields(cf("F", "text", `"v"`)),
		recordWithFields(labelsField("F", `[]`)),
		recordWithFields(labelsField("F", `["x"]`, FieldOption{ID: "x", Label: "X"})),
	}

	for i, record := range records {
		isSet := mustMatch(t, CustomFieldFilter{FieldName: "F", Operator: OpIsSet}, record)
		isNotSet := mustMatch(t, CustomFieldFilter{FieldName: "F", Operator: OpIsNotSet}, record)
		if isSet == isNotSet {
			t.Errorf("record %d: IS_SET and IS_NOT_SET are not complements (both %v)", i, isSet)
		}
	}
}

func TestIsSetOnMissingVsEmpty(t *testing.T) {
	undeclared := recordWithFields()
	if mustMatch(t, CustomFieldFilter{FieldName: "Priority", Operator: OpIsSet}, undeclared) {
		t.Error("IS_SET on undeclared field should be false")
	}
	if !mustMatch(t, CustomFieldFilter{FieldName: "Priority", Operator: OpIsNotSet}, undeclared) {
		t.Error("IS_NOT_SET on undeclared field should be true")
	}

	// An empty labels selection is a valid value: the field is set.
	emptyLabels := recordWithFields(labelsField("Areas", `[]`))
	if !mustMatch(t, CustomFieldFilter{FieldName: "Areas", Operator: OpIsSet}, emptyLabels) {
		t.Error("IS_SET on empty labels selection should be true")
	}
}

func TestFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		f       CustomFieldFilter
		wantErr string
	}{
		{
			name: "is_set needs no value",
			f:    CustomFieldFilter{FieldName: "F", Operator: OpIsSet},
		},
		{
			name:    "equals requires a value",
			f:       CustomFieldFilter{FieldName: "F", Operator: OpEquals},
			wantErr: "requires a comparison value",
		},
		{
			name:    "unknown operator",
			f:       CustomFieldFilter{FieldName: "F", Operator: "matches"},
			wantErr: "unknown filter operator",
		},
		{
			name: "valid in filter",
			f:    CustomFieldFilter{FieldName: "F", Operator: OpIn, Value: []string{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMatchUnknownOperator(t *testing.T) {
	record := recordWithFields(cf("F", "text", `"v"`))
	f := CustomFieldFilter{FieldName: "F", Operator: "matches", Value: "v"}
	if _, err := f.Match(record); err == nil {
		t.Fatal("expected error for unknown operator, got nil")
	}
}
