package utils

// Record is one raw row as returned by a REST listing or a DOQL query.
type Record map[string]any

// Has reports whether the field is present and non-empty.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case bool:
		return t
	}
	return true
}

// String returns the field as a string, or "" when absent.
func (r Record) String(key string) string {
	return ToString(r[key])
}

// Int returns the field as an int, or 0 when absent.
func (r Record) Int(key string) int {
	if r[key] == nil {
		return 0
	}
	return ToInt(r[key])
}

// Float returns the field as a float64, or 0 when absent.
func (r Record) Float(key string) float64 {
	return ToFloat(r[key])
}

// Bool returns the field as a bool.
func (r Record) Bool(key string) bool {
	return ToBool(r[key])
}

// Strings returns a list field, splitting comma separated strings.
func (r Record) Strings(key string) []string {
	return ToStringSlice(r[key])
}

// Records returns a nested list of objects.
func (r Record) Records(key string) []Record {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}
