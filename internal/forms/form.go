// Package forms is the declarative validation layer. Each endpoint declares
// an ordered set of typed fields; binding runs a pure shape pass and then a
// semantic pass that may consult the database or the ephemeral store.
// Validation stops at the first failing field in declaration order and
// surfaces exactly one (field, message) pair. A semantic validator may
// rewrite its field's value in place so the handler consumes the resolved
// value, never the raw input.
package forms

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/response"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
)

// Check is a pure shape validator. It returns a plain error whose message is
// surfaced verbatim as the field's validation message.
type Check func(f *Field, fm *Form) error

// Semantic validators run only if every shape check of the field passed.
// They may perform I/O, rewrite f.Str/f.Int, or attach a resolved entity to
// f.Entity. Returning a *response.Error propagates it unchanged; any other
// error is wrapped as a validation failure on the field.
type Semantic func(f *Field, fm *Form) error

type Field struct {
	Name     string
	Kind     Kind
	Shape    []Check
	Semantic Semantic

	defaultValue string
	hasDefault   bool

	// Bound state, populated by Bind.
	Present bool
	Str     string
	Int     int
	Entity  any
}

func StringField(name string, checks ...Check) *Field {
	return &Field{Name: name, Kind: KindString, Shape: checks}
}

func IntField(name string, checks ...Check) *Field {
	return &Field{Name: name, Kind: KindInt, Shape: checks}
}

// WithDefault supplies the value used when the input omits the field.
func (f *Field) WithDefault(value string) *Field {
	f.defaultValue = value
	f.hasDefault = true
	return f
}

// WithSemantic attaches the field's semantic validator.
func (f *Field) WithSemantic(fn Semantic) *Field {
	f.Semantic = fn
	return f
}

type Form struct {
	fields []*Field
	byName map[string]*Field
}

func New(fields ...*Field) *Form {
	fm := &Form{fields: fields, byName: make(map[string]*Field, len(fields))}
	for _, f := range fields {
		fm.byName[f.Name] = f
	}
	return fm
}

// Field returns the named field, or nil if the form does not declare it.
func (fm *Form) Field(name string) *Field {
	return fm.byName[name]
}

func (fm *Form) Str(name string) string {
	return fm.byName[name].Str
}

func (fm *Form) Int(name string) int {
	return fm.byName[name].Int
}

func (fm *Form) Entity(name string) any {
	return fm.byName[name].Entity
}

func (fm *Form) Present(name string) bool {
	return fm.byName[name].Present
}

// Bind pulls input from the request and validates it. Per-key precedence:
// JSON body over query parameters over the explicit fallback map, so a path
// segment passed as fallback still binds when the body carries other fields.
func (fm *Form) Bind(c *gin.Context, fallback map[string]string) error {
	source := extractSource(c, fallback)

	for _, f := range fm.fields {
		if raw, ok := source[f.Name]; ok && raw != "" {
			f.Present = true
			f.Str = raw
		} else if f.hasDefault {
			f.Str = f.defaultValue
		}
	}

	return fm.validate()
}

func (fm *Form) validate() error {
	for _, f := range fm.fields {
		for _, check := range f.Shape {
			if err := check(f, fm); err != nil {
				return response.Validation(f.Name, err.Error())
			}
		}
		if f.Semantic == nil {
			continue
		}
		if err := f.Semantic(f, fm); err != nil {
			if respErr, ok := err.(*response.Error); ok {
				return respErr
			}
			return response.Validation(f.Name, err.Error())
		}
	}
	return nil
}

func extractSource(c *gin.Context, fallback map[string]string) map[string]string {
	source := make(map[string]string, len(fallback))
	for key, value := range fallback {
		source[key] = value
	}

	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			source[key] = values[0]
		}
	}

	for key, value := range decodeBody(c) {
		source[key] = value
	}

	return source
}

// decodeBody reads the request body as a JSON object, silently tolerating
// absent or malformed bodies. Scalar JSON values are stringified so string
// and int fields bind uniformly.
func decodeBody(c *gin.Context) map[string]string {
	if c.Request.Body == nil {
		return nil
	}

	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		return nil
	}

	body := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			body[key] = v
		case float64:
			body[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			body[key] = fmt.Sprintf("%v", v)
		}
	}
	return body
}
