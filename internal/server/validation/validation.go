// Package validation checks request bodies against embedded JSON schemas and
// reports failures as per-field messages.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"sort"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names.
const (
	Login      = "login.json"
	CreateTask = "task_create.json"
	UpdateTask = "task_update.json"
)

// BodyField collects errors that do not belong to a single property.
const BodyField = "body"

//go:embed schemas/*.json
var schemaFS embed.FS

type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles every embedded schema.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true

	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(schemaFS, "schemas/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if err := compiler.AddResource(e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", e.Name(), err)
		}
		names = append(names, e.Name())
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		s, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[name] = s
	}
	return v, nil
}

// Validate checks body against the named schema. It returns nil, a
// *common.ValidationError, or an error when the schema is unknown.
func (v *Validator) Validate(name string, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	doc, err := decode(body)
	if err != nil {
		verr := common.NewValidationError()
		verr.Add(BodyField, "The request body must be valid JSON.")
		return verr
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate %s: %w", name, err)
	}

	verr := common.NewValidationError()
	collect(verr, schema, doc, ve)
	for field, msgs := range verr.Fields {
		required := fmt.Sprintf("The %s field is required.", attribute(field))
		if slices.Contains(msgs, required) {
			verr.Fields[field] = []string{required}
		}
	}
	return verr.OrNil()
}

func decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data")
	}
	return doc, nil
}

func collect(verr *common.ValidationError, root *jsonschema.Schema, doc any, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		addLeaf(verr, root, doc, err)
		return
	}
	for _, cause := range err.Causes {
		collect(verr, root, doc, cause)
	}
}

func addLeaf(verr *common.ValidationError, root *jsonschema.Schema, doc any, err *jsonschema.ValidationError) {
	keyword := lastSegment(err.KeywordLocation)
	field := firstSegment(err.InstanceLocation)

	if field == "" {
		switch keyword {
		case "required":
			obj, _ := doc.(map[string]any)
			for _, name := range missing(root.Required, obj) {
				verr.Add(name, fmt.Sprintf("The %s field is required.", attribute(name)))
			}
		case "type":
			verr.Add(BodyField, "The request body must be a JSON object.")
		default:
			verr.Add(BodyField, "The request body is invalid.")
		}
		return
	}

	verr.Add(field, message(root.Properties[field], field, keyword))
}

func message(prop *jsonschema.Schema, field, keyword string) string {
	name := attribute(field)
	if prop == nil {
		return fmt.Sprintf("The %s is invalid.", name)
	}

	switch keyword {
	case "type":
		if slices.Contains(prop.Types, "boolean") {
			return fmt.Sprintf("The %s field must be true or false.", name)
		}
		if slices.Contains(prop.Types, "string") {
			return fmt.Sprintf("The %s must be a string.", name)
		}
	case "minLength":
		if prop.MinLength <= 1 {
			return fmt.Sprintf("The %s field is required.", name)
		}
		return fmt.Sprintf("The %s must be at least %d characters.", name, prop.MinLength)
	case "maxLength":
		return fmt.Sprintf("The %s may not be greater than %d characters.", name, prop.MaxLength)
	case "pattern":
		return fmt.Sprintf("The %s field is required.", name)
	case "format":
		if prop.Format == "email" {
			return fmt.Sprintf("The %s must be a valid email address.", name)
		}
	}
	return fmt.Sprintf("The %s is invalid.", name)
}

func missing(required []string, obj map[string]any) []string {
	var out []string
	for _, name := range required {
		if _, ok := obj[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// attribute renders a property name the way messages refer to it.
func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func firstSegment(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	first, _, _ := strings.Cut(ptr, "/")
	return strings.ReplaceAll(strings.ReplaceAll(first, "~1", "/"), "~0", "~")
}

func lastSegment(ptr string) string {
	if i := strings.LastIndex(ptr, "/"); i >= 0 {
		return ptr[i+1:]
	}
	return ptr
}
