package cuekit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FilterOperator selects the comparison applied by a CustomFieldFilter.
type FilterOperator string

const (
	OpEquals             FilterOperator = "equals"
	OpNotEquals          FilterOperator = "not_equals"
	OpGreaterThan        FilterOperator = "greater_than"
	OpGreaterThanOrEqual FilterOperator = "greater_than_or_equal"
	OpLessThan           FilterOperator = "less_than"
	OpLessThanOrEqual    FilterOperator = "less_than_or_equal"
	OpContains           FilterOperator = "contains"
	OpStartsWith         FilterOperator = "starts_with"
	OpRegex              FilterOperator = "regex"
	OpIn                 FilterOperator = "in"
	OpIsSet              FilterOperator = "is_set"
	OpIsNotSet           FilterOperator = "is_not_set"
)

// Operators returns every filter operator.
func Operators() []FilterOperator {
	return []FilterOperator{
		OpEquals, OpNotEquals,
		OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual,
		OpContains, OpStartsWith, OpRegex, OpIn,
		OpIsSet, OpIsNotSet,
	}
}

// CustomFieldFilter is one immutable filter criterion: a custom field name,
// an operator, and a comparison value. Value is ignored by OpIsSet and
// OpIsNotSet and required by every other operator.
//
// Construct once, evaluate many times; a filter holds no mutable state and
// is safe to share across goroutines.
type CustomFieldFilter struct {
	FieldName string
	Operator  FilterOperator
	Value     any
}

// Validate checks that the operator is known and that a comparison value is
// present when the operator needs one.
func (f CustomFieldFilter) Validate() error {
	switch f.Operator {
	case OpIsSet, OpIsNotSet:
		return nil
	case OpEquals, OpNotEquals,
		OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual,
		OpContains, OpStartsWith, OpRegex, OpIn:
		if f.Value == nil {
			return fmt.Errorf("operator %s requires a comparison value", f.Operator)
		}
		return nil
	default:
		return fmt.Errorf("unknown filter operator %q", f.Operator)
	}
}

// Match evaluates the filter against one task record.
//
// Absent or valueless fields never produce an error: each operator maps that
// condition to a boolean outcome (OpNotEquals and OpIsNotSet treat a missing
// field as a match, every other operator as a non-match). The only evaluation
// errors are caller mistakes: a malformed OpRegex pattern or an unknown
// operator. A bad regex is surfaced rather than treated as a non-match so a
// typo cannot silently exclude every record.
func (f CustomFieldFilter) Match(raw *RawTask) (bool, error) {
	// Compile before resolving so a malformed pattern surfaces even when
	// the field is absent from this particular record.
	var re *regexp.Regexp
	if f.Operator == OpRegex {
		pattern, ok := f.Value.(string)
		if !ok {
			return false, fmt.Errorf("regex filter on %q: pattern must be a string, got %T", f.FieldName, f.Value)
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("regex filter on %q: %w", f.FieldName, err)
		}
		re = compiled
	}

	fv := resolveFieldValue(raw, f.FieldName)

	switch f.Operator {
	case OpIsSet:
		return fv.present(), nil

	case OpIsNotSet:
		return !fv.present(), nil

	case OpEquals:
		if !fv.present() {
			return false, nil
		}
		return fieldEquals(fv, f.Value), nil

	case OpNotEquals:
		if !fv.present() {
			return true, nil
		}
		return !fieldEquals(fv, f.Value), nil

	case OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		have, ok := fv.asNumber()
		if !ok {
			return false, nil
		}
		want, ok := toFloat(f.Value)
		if !ok {
			return false, nil
		}
		switch f.Operator {
		case OpGreaterThan:
			return have > want, nil
		case OpGreaterThanOrEqual:
			return have >= want, nil
		case OpLessThan:
			return have < want, nil
		default:
			return have <= want, nil
		}

	case OpContains:
		have, ok := fv.asText()
		if !ok {
			return false, nil
		}
		return strings.Contains(strings.ToLower(have), strings.ToLower(toText(f.Value))), nil

	case OpStartsWith:
		have, ok := fv.asText()
		if !ok {
			return false, nil
		}
		return strings.HasPrefix(strings.ToLower(have), strings.ToLower(toText(f.Value))), nil

	case OpRegex:
		// Case-sensitive, unlike OpContains/OpStartsWith. Callers depend
		// on this asymmetry.
		have, ok := fv.asText()
		if !ok {
			return false, nil
		}
		return re.MatchString(have), nil

	case OpIn:
		members, ok := toSlice(f.Value)
		if !ok {
			return false, nil
		}
		if fv.kind == kindLabels {
			// Multiselect: any selected label in the candidate set.
			for _, label := range fv.labels {
				for _, m := range members {
					if label == toText(m) {
						return true, nil
					}
				}
			}
			return false, nil
		}
		if !fv.present() {
			return false, nil
		}
		for _, m := range members {
			if fieldEquals(fv, m) {
				return true, nil
			}
		}
		return false, nil

	default:
		return false, fmt.Errorf("unknown filter operator %q", f.Operator)
	}
}

// fieldEquals compares a resolved field value against a filter value using
// native equality for the field's runtime type.
func fieldEquals(fv fieldValue, want any) bool {
	switch fv.kind {
	case kindNumber:
		n, ok := toFloat(want)
		return ok && fv.num == n

	case kindBool:
		switch w := want.(type) {
		case bool:
			return fv.b == w
		case string:
			b, err := strconv.ParseBool(w)
			return err == nil && fv.b == b
		default:
			return false
		}

	case kindText:
		return fv.text == toText(want)

	case kindLabels:
		if s, ok := want.(string); ok {
			return len(fv.labels) == 1 && fv.labels[0] == s
		}
		members, ok := toSlice(want)
		if !ok || len(members) != len(fv.labels) {
			return false
		}
		for i, m := range members {
			if fv.labels[i] != toText(m) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// toFloat coerces a filter value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toText renders a filter value as text.
func toText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// toSlice normalizes the candidate set of an OpIn filter.
func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}
