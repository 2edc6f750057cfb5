package resource

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Kind int

const (
	KindString Kind = iota
	KindStringList
	KindDate
	KindTimestamp
)

type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Definition is the capability set one resource collection plugs into the
// shared CRUD pipeline: wire names, table, field schema, and whether records
// carry a fileKey/fileUrl pair coupled to an object in external storage.
type Definition struct {
	Singular   string
	Plural     string
	Table      string
	Fields     []Field
	FileBacked bool

	// Defaults fills absent fields on create (e.g. a creation timestamp).
	Defaults func(doc map[string]any)
}

var ErrValidation = errors.New("validation failed")

const (
	FieldFileKey = "fileKey"
	FieldFileURL = "fileUrl"
)

// Filter drops every key the schema does not declare.
func (d Definition) Filter(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for _, f := range d.Fields {
		if v, ok := doc[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}

// ValidateCreate checks that every required field is present and every
// submitted field is well formed. The doc must already be filtered.
func (d Definition) ValidateCreate(doc map[string]any) error {
	for _, f := range d.Fields {
		v, ok := doc[f.Name]
		if !ok {
			if f.Required {
				return fmt.Errorf("%w: missing required field %q", ErrValidation, f.Name)
			}
			continue
		}
		if err := validateValue(f, v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUpdate checks only the submitted fields; presence is optional
// since updates may be partial. For file-backed resources the key/url pair
// must travel together so both always reference the same stored object.
func (d Definition) ValidateUpdate(doc map[string]any) error {
	for _, f := range d.Fields {
		v, ok := doc[f.Name]
		if !ok {
			continue
		}
		if err := validateValue(f, v); err != nil {
			return err
		}
	}

	if d.FileBacked {
		_, hasKey := doc[FieldFileKey]
		_, hasURL := doc[FieldFileURL]
		if hasKey != hasURL {
			return fmt.Errorf("%w: %s and %s must be updated together", ErrValidation, FieldFileKey, FieldFileURL)
		}
	}
	return nil
}

func (d Definition) ApplyDefaults(doc map[string]any) {
	if d.Defaults != nil {
		d.Defaults(doc)
	}
}

// FileKey extracts the object key a record references, if any.
func FileKey(doc map[string]any) string {
	s, _ := doc[FieldFileKey].(string)
	return strings.TrimSpace(s)
}

func validateValue(f Field, v any) error {
	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: field %q must be a non-empty string", ErrValidation, f.Name)
		}
	case KindStringList:
		items, err := stringList(v)
		if err != nil {
			return fmt.Errorf("%w: field %q must be a list of strings", ErrValidation, f.Name)
		}
		if f.Required && len(items) == 0 {
			return fmt.Errorf("%w: field %q must not be empty", ErrValidation, f.Name)
		}
	case KindDate:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: field %q must be a date string", ErrValidation, f.Name)
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return fmt.Errorf("%w: field %q must be a date in YYYY-MM-DD form", ErrValidation, f.Name)
		}
	case KindTimestamp:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: field %q must be a timestamp string", ErrValidation, f.Name)
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("%w: field %q must be an RFC 3339 timestamp", ErrValidation, f.Name)
		}
	}
	return nil
}

// stringList accepts both []string (typed callers) and []any (decoded JSON).
func stringList(v any) ([]string, error) {
	switch items := v.(type) {
	case []string:
		return items, nil
	case []any:
		out := make([]string, 0, len(items))
		for _, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, errors.New("not a string")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.New("not a list")
	}
}
