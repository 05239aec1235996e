// internal/models/setting.go
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SettingKind tags the shape of a Setting's value, per SPEC_FULL.md §9's
// tagged-variant design for the settings table.
type SettingKind string

const (
	KindBool   SettingKind = "bool"
	KindInt    SettingKind = "int"
	KindFloat  SettingKind = "float"
	KindString SettingKind = "string"
	KindJSON   SettingKind = "json"
)

// Setting is one row of the runtime-tunable key/value store (C1). Value
// holds the canonical string form; ValueJSON is populated only for
// Kind == KindJSON.
type Setting struct {
	Key       string      `json:"key" db:"key"`
	Kind      SettingKind `json:"kind" db:"kind"`
	Value     string      `json:"value" db:"value"`
	ValueJSON *string     `json:"value_json" db:"value_json"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// AsBool decodes Value as a bool, per its Kind.
func (s *Setting) AsBool() (bool, error) {
	return strconv.ParseBool(s.Value)
}

// AsInt decodes Value as an int.
func (s *Setting) AsInt() (int, error) {
	return strconv.Atoi(s.Value)
}

// AsFloat decodes Value as a float64.
func (s *Setting) AsFloat() (float64, error) {
	return strconv.ParseFloat(s.Value, 64)
}

// AsJSON unmarshals ValueJSON into dest.
func (s *Setting) AsJSON(dest interface{}) error {
	if s.ValueJSON == nil {
		return fmt.Errorf("setting %q has no json value", s.Key)
	}
	return json.Unmarshal([]byte(*s.ValueJSON), dest)
}
