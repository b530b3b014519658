// Package settings loads the target program's settings file: a JSON object
// with three required string fields.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultPath is where run looks for the settings file, relative to the
// working directory.
const DefaultPath = "settings.json"

// Required keys, in the order they are checked.
const (
	KeyInputDir   = "input_dir"
	KeyOutputDir  = "output_dir"
	KeyConfigFile = "config_file"
)

// Sentinels for errors.Is checks.
var (
	ErrMissing    = errors.New("settings file cannot be opened")
	ErrMalformed  = errors.New("settings file is malformed")
	ErrIncomplete = errors.New("settings file is incomplete")
)

// Settings are the values forwarded to the target program.
type Settings struct {
	InputDir   string
	OutputDir  string
	ConfigFile string
}

// Error describes a settings load failure. Field is set when one key is at fault.
type Error struct {
	Kind  error
	Path  string
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Path, e.Kind)
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Load reads and validates the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ErrMissing, Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse validates settings content; source names it in errors.
func Parse(source string, data []byte) (*Settings, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Kind: ErrMalformed, Path: source, Err: err}
	}
	if raw == nil {
		return nil, &Error{Kind: ErrMalformed, Path: source, Err: errors.New("expected a JSON object")}
	}

	values := make(map[string]string, 3)
	for _, key := range []string{KeyInputDir, KeyOutputDir, KeyConfigFile} {
		v, ok := raw[key]
		if !ok || v == nil {
			return nil, &Error{Kind: ErrIncomplete, Path: source, Field: key, Err: errors.New("required field missing")}
		}
		s, ok := v.(string)
		if !ok {
			return nil, &Error{Kind: ErrMalformed, Path: source, Field: key, Err: fmt.Errorf("expected string, got %T", v)}
		}
		if s == "" {
			return nil, &Error{Kind: ErrIncomplete, Path: source, Field: key, Err: errors.New("required field empty")}
		}
		values[key] = s
	}

	return &Settings{
		InputDir:   values[KeyInputDir],
		OutputDir:  values[KeyOutputDir],
		ConfigFile: values[KeyConfigFile],
	}, nil
}
