package cuekit

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// fieldKind classifies the runtime shape of a resolved custom field value.
// Filter operators dispatch on this shape, not on the declared type string.
type fieldKind int

const (
	kindMissing fieldKind = iota // field not declared on the record
	kindUnset                    // declared but no usable value
	kindText
	kindNumber
	kindBool
	kindLabels
)

// fieldValue is the tagged variant returned by resolveFieldValue.
type fieldValue struct {
	kind   fieldKind
	text   string
	num    float64
	b      bool
	labels []string
}

func missingValue() fieldValue { return fieldValue{kind: kindMissing} }

func unsetValue() fieldValue { return fieldValue{kind: kindUnset} }

func textValue(s string) fieldValue { return fieldValue{kind: kindText, text: s} }

func numberValue(n float64) fieldValue { return fieldValue{kind: kindNumber, num: n} }

func boolValue(b bool) fieldValue { return fieldValue{kind: kindBool, b: b} }

func labelsValue(names []string) fieldValue { return fieldValue{kind: kindLabels, labels: names} }

// present reports whether the field resolved to an actual value. An empty
// labels selection counts as present; only an undeclared field or a declared
// field without a value does not.
func (v fieldValue) present() bool {
	return v.kind != kindMissing && v.kind != kindUnset
}

// asText returns a textual rendering for substring-style operators.
func (v fieldValue) asText() (string, bool) {
	switch v.kind {
	case kindText:
		return v.text, true
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	case kindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// asNumber returns a numeric value for ordered-comparison operators.
func (v fieldValue) asNumber() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindText:
		n, err := strconv.ParseFloat(v.text, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// findCustomField looks a declaration up by name. Field names are expected to
// be unique within one record; on duplicates the first match wins.
func findCustomField(fields []CustomField, name string) (*CustomField, bool) {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i], true
		}
	}
	return nil, false
}

// hasRawValue reports whether a field carries a value key that is not JSON null.
func hasRawValue(cf *CustomField) bool {
	return len(cf.Value) > 0 && !bytes.Equal(bytes.TrimSpace(cf.Value), []byte("null"))
}

// resolveFieldValue resolves a named custom field on a record to its runtime
// shape. It never fails: undeclared fields resolve to the missing variant and
// declared-but-empty fields to the unset variant, so filter operators can map
// those conditions to boolean outcomes.
func resolveFieldValue(raw *RawTask, name string) fieldValue {
	cf, ok := findCustomField(raw.CustomFields, name)
	if !ok {
		return missingValue()
	}

	switch cf.Type {
	case "labels":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		names, ok := labelNames(cf)
		if !ok {
			return unsetValue()
		}
		return labelsValue(names)

	case "number":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		if n, ok := rawFloat(cf.Value); ok {
			return numberValue(n)
		}
		if s, ok := rawString(cf.Value); ok {
			return textValue(s)
		}
		return unsetValue()

	case "date":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		if n, ok := rawFloat(cf.Value); ok {
			return numberValue(n)
		}
		return unsetValue()

	case "drop_down":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		name, ok := dropdownName(cf)
		if !ok {
			return unsetValue()
		}
		return textValue(name)

	case "text", "short_text", "url":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		if s, ok := rawString(cf.Value); ok {
			return textValue(s)
		}
		return unsetValue()

	case "checkbox":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		if b, ok := rawBool(cf.Value); ok {
			return boolValue(b)
		}
		return unsetValue()

	case "tasks":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		var refs []TaskRef
		if err := json.Unmarshal(cf.Value, &refs); err != nil {
			return unsetValue()
		}
		names := make([]string, 0, len(refs))
		for _, r := range refs {
			names = append(names, r.Name)
		}
		return labelsValue(names)

	case "attachment":
		if !hasRawValue(cf) {
			return unsetValue()
		}
		var atts []Attachment
		if err := json.Unmarshal(cf.Value, &atts); err != nil {
			return unsetValue()
		}
		urls := make([]string, 0, len(atts))
		for _, a := range atts {
			if a.URLWQuery != "" {
				urls = append(urls, a.URLWQuery)
			} else {
				urls = append(urls, a.URL)
			}
		}
		return labelsValue(urls)

	default:
		// Unknown declared type: fall back on the raw JSON shape.
		if !hasRawValue(cf) {
			return unsetValue()
		}
		if s, ok := rawString(cf.Value); ok {
			return textValue(s)
		}
		if n, ok := rawFloat(cf.Value); ok {
			return numberValue(n)
		}
		if b, ok := rawBool(cf.Value); ok {
			return boolValue(b)
		}
		return unsetValue()
	}
}

// labelNames resolves a labels field's stored option IDs through the field's
// type_config id->name mapping. Unmapped IDs keep the raw ID so callers can
// still see what was stored. An empty selection is a valid, non-missing value.
func labelNames(cf *CustomField) ([]string, bool) {
	var ids []string
	if err := json.Unmarshal(cf.Value, &ids); err != nil {
		return nil, false
	}

	byID := map[string]string{}
	if cf.TypeConfig != nil {
		for _, opt := range cf.TypeConfig.Options {
			byID[opt.ID] = opt.displayName()
		}
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok && n != "" {
			names = append(names, n)
		} else {
			names = append(names, id)
		}
	}
	return names, true
}

// dropdownName resolves a drop_down field's value to the selected option's
// name. The API stores either a positional index into type_config.options or
// an option ID string.
func dropdownName(cf *CustomField) (string, bool) {
	var opts []FieldOption
	if cf.TypeConfig != nil {
		opts = cf.TypeConfig.Options
	}

	if idx, ok := rawInt(cf.Value); ok {
		if idx < 0 || int(idx) >= len(opts) {
			return "", false
		}
		return opts[idx].displayName(), true
	}

	s, ok := rawString(cf.Value)
	if !ok {
		return "", false
	}
	for _, opt := range opts {
		if opt.ID == s || opt.displayName() == s {
			return opt.displayName(), true
		}
	}
	// Value is already a plain name with no matching option.
	return s, true
}

// rawString decodes a JSON string value.
func rawString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawFloat decodes a JSON number, accepting the quoted-number form the API
// uses for number and date fields.
func rawFloat(v json.RawMessage) (float64, bool) {
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n, true
	}
	s, ok := rawString(v)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// rawInt decodes a JSON integer.
func rawInt(v json.RawMessage) (int64, bool) {
	var n int64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, false
	}
	return n, true
}

// rawBool decodes a JSON bool, accepting the quoted form.
func rawBool(v json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b, true
	}
	s, ok := rawString(v)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	return b, err == nil
}

// millisToTime converts a millisecond epoch timestamp to time.Time. It
// rejects timestamps that land in 1970, which almost always means the input
// was in seconds rather than milliseconds.
func millisToTime(ms int64) (time.Time, error) {
	t := time.UnixMilli(ms).UTC()
	if t.Year() == 1970 {
		return time.Time{}, errTimestampInSeconds
	}
	return t, nil
}
