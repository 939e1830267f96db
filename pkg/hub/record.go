package hub

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a single spreadsheet row keyed by column header
type Record map[string]string

// Clone returns a copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID returns the record's ID column
func (r Record) ID() string {
	return r[ColID]
}

// FirstNonEmpty returns the value of the first listed column that is set
func (r Record) FirstNonEmpty(cols ...string) string {
	for _, col := range cols {
		if v := r[col]; v != "" {
			return v
		}
	}
	return ""
}

// BodyValue reads a column from a decoded JSON body. The camelCase alias wins over the
// header key when both are non-empty; ok is false when the body mentions neither
func BodyValue(body map[string]any, col Column) (value string, ok bool) {
	aliasVal, aliasOk := body[col.Alias]
	headerVal, headerOk := body[col.Header]

	if s := stringify(aliasVal); aliasOk && s != "" {
		return s, true
	}
	if s := stringify(headerVal); headerOk && s != "" {
		return s, true
	}
	return "", aliasOk || headerOk
}

// FromBody builds a record from a request body, leaving out columns the body does not mention
func FromBody(schema Schema, body map[string]any) Record {
	rec := Record{}
	for _, col := range schema.Columns {
		if v, ok := BodyValue(body, col); ok {
			rec[col.Header] = v
		}
	}
	return rec
}

// stringify converts decoded JSON scalars into cell text
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
