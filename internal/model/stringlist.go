package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList normalizes the inconsistently-typed list columns that arrive
// from older data sources: a JSON array, a stringified array, a bare
// comma-separated string, or null all decode into a plain []string. Nothing
// past this type ever branches on the runtime shape.
type StringList []string

// UnmarshalJSON accepts []string, a JSON string containing an encoded
// array, a bare string, or null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*l = nil
		return nil
	}

	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("string list: unsupported shape %s", trimmed)
	}
	*l = parseListString(s)
	return nil
}

// Scan implements sql.Scanner so TEXT columns decode the same way.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		*l = parseListString(v)
		return nil
	case []byte:
		*l = parseListString(string(v))
		return nil
	default:
		return fmt.Errorf("string list: cannot scan %T", src)
	}
}

// Value stores the list as a JSON array.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func parseListString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return items
		}
		// Stringified array with single quotes or loose commas.
		s = strings.Trim(s, "[]")
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
