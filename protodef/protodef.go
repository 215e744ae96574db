// Package protodef parses the canonical Zipkin proto3 schema that ships
// embedded in the binary. The rest of the module encodes spans against
// hand-laid field constants; this package keeps those constants honest by
// exposing the schema as parsed data.
package protodef

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"
)

//go:embed zipkin.proto
var protoSource string

// Definition holds the parsed schema: messages and enums keyed by their
// fully qualified names.
type Definition struct {
	pkg      string
	syntax   string
	messages map[string]*Message
	enums    map[string]*Enum
}

// Message represents a parsed message definition.
type Message struct {
	Name   string
	Fields []*Field

	byName map[string]*Field
}

// Field represents a parsed message field. KeyType is set only for map
// fields, in which case Type holds the value type.
type Field struct {
	Name     string
	JSONName string
	Number   int32
	Type     string
	KeyType  string
	Repeated bool
}

// IsMap reports whether the field was declared with map syntax.
func (f *Field) IsMap() bool {
	return f.KeyType != ""
}

// Enum represents a parsed enum definition.
type Enum struct {
	Name   string
	Values []EnumValue
}

// EnumValue represents a single enum constant.
type EnumValue struct {
	Name   string
	Number int32
}

// Value returns the number of the named enum constant.
func (e *Enum) Value(name string) (int32, error) {
	for _, v := range e.Values {
		if v.Name == name {
			return v.Number, nil
		}
	}
	return 0, fmt.Errorf("enum value not found: %s.%s", e.Name, name)
}

// Load parses the embedded zipkin.proto.
func Load() (*Definition, error) {
	return Parse(strings.NewReader(protoSource))
}

// Source returns the embedded zipkin.proto text.
func Source() string {
	return protoSource
}

// Parse reads a .proto file and builds its Definition.
func Parse(r io.Reader) (*Definition, error) {
	parsedBody, err := protoparser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proto: %w", err)
	}

	d := &Definition{
		messages: make(map[string]*Message),
		enums:    make(map[string]*Enum),
	}
	if parsedBody.Syntax != nil {
		d.syntax = parsedBody.Syntax.ProtobufVersion
	}
	for _, body := range parsedBody.ProtoBody {
		switch b := body.(type) {
		case *protoparserparser.Package:
			d.pkg = b.Name
		}
	}
	for _, body := range parsedBody.ProtoBody {
		switch b := body.(type) {
		case *protoparserparser.Message:
			if err := d.addMessage(d.pkg, b); err != nil {
				return nil, err
			}
		case *protoparserparser.Enum:
			if err := d.addEnum(d.pkg, b); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// addMessage registers a message and its nested types. Nested names are
// qualified by their parent, e.g. "zipkin.proto3.Span.Kind".
func (d *Definition) addMessage(prefix string, pm *protoparserparser.Message) error {
	fullName := qualify(prefix, pm.MessageName)
	msg := &Message{
		Name:   pm.MessageName,
		byName: make(map[string]*Field),
	}

	for _, body := range pm.MessageBody {
		switch b := body.(type) {
		case *protoparserparser.Field:
			number, err := parseFieldNumber(fullName, b.FieldName, b.FieldNumber)
			if err != nil {
				return err
			}
			field := &Field{
				Name:     b.FieldName,
				JSONName: toLowerCamel(b.FieldName),
				Number:   number,
				Type:     b.Type,
				Repeated: b.IsRepeated,
			}
			msg.Fields = append(msg.Fields, field)
			msg.byName[field.Name] = field
		case *protoparserparser.MapField:
			number, err := parseFieldNumber(fullName, b.MapName, b.FieldNumber)
			if err != nil {
				return err
			}
			field := &Field{
				Name:     b.MapName,
				JSONName: toLowerCamel(b.MapName),
				Number:   number,
				Type:     b.Type,
				KeyType:  b.KeyType,
			}
			msg.Fields = append(msg.Fields, field)
			msg.byName[field.Name] = field
		case *protoparserparser.Enum:
			if err := d.addEnum(fullName, b); err != nil {
				return err
			}
		case *protoparserparser.Message:
			if err := d.addMessage(fullName, b); err != nil {
				return err
			}
		}
	}

	d.messages[fullName] = msg
	return nil
}

func (d *Definition) addEnum(prefix string, pe *protoparserparser.Enum) error {
	enum := &Enum{Name: pe.EnumName}
	for _, body := range pe.EnumBody {
		ef, ok := body.(*protoparserparser.EnumField)
		if !ok {
			continue
		}
		number, err := strconv.ParseInt(ef.Number, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid number %q for enum value %s.%s: %w",
				ef.Number, pe.EnumName, ef.Ident, err)
		}
		enum.Values = append(enum.Values, EnumValue{Name: ef.Ident, Number: int32(number)})
	}
	d.enums[qualify(prefix, pe.EnumName)] = enum
	return nil
}

func parseFieldNumber(message, field, raw string) (int32, error) {
	number, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q for field %s.%s: %w", raw, message, field, err)
	}
	return int32(number), nil
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Package returns the package declared in the schema.
func (d *Definition) Package() string {
	return d.pkg
}

// Syntax returns the declared syntax, e.g. "proto3".
func (d *Definition) Syntax() string {
	return d.syntax
}

// Message retrieves a message definition by name. A bare name matches any
// package or nesting prefix.
func (d *Definition) Message(name string) (*Message, error) {
	if msg, exists := d.messages[name]; exists {
		return msg, nil
	}
	for fullName, msg := range d.messages {
		if strings.HasSuffix(fullName, "."+name) {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("message not found: %s", name)
}

// Enum retrieves an enum definition by name. A bare name matches any
// package or nesting prefix.
func (d *Definition) Enum(name string) (*Enum, error) {
	if enum, exists := d.enums[name]; exists {
		return enum, nil
	}
	for fullName, enum := range d.enums {
		if strings.HasSuffix(fullName, "."+name) {
			return enum, nil
		}
	}
	return nil, fmt.Errorf("enum not found: %s", name)
}

// Messages returns all registered message names, sorted.
func (d *Definition) Messages() []string {
	names := make([]string, 0, len(d.messages))
	for name := range d.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enums returns all registered enum names, sorted.
func (d *Definition) Enums() []string {
	names := make([]string, 0, len(d.enums))
	for name := range d.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field retrieves a field by its declared name.
func (m *Message) Field(name string) (*Field, error) {
	if field, exists := m.byName[name]; exists {
		return field, nil
	}
	return nil, fmt.Errorf("field not found: %s.%s", m.Name, name)
}

// FieldNumber returns the number of the named field.
func (m *Message) FieldNumber(name string) (int32, error) {
	field, err := m.Field(name)
	if err != nil {
		return 0, err
	}
	return field.Number, nil
}

// toLowerCamel converts snake_case to lowerCamelCase, the JSON name proto3
// derives for a field.
func toLowerCamel(s string) string {
	if s == "" {
		return s
	}
	hasUnderscore := false
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			hasUnderscore = true
			break
		}
	}
	if !hasUnderscore {
		if s[0] >= 'A' && s[0] <= 'Z' {
			return string(s[0]-'A'+'a') + s[1:]
		}
		return s
	}
	out := make([]byte, 0, len(s))
	upperNext := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if len(out) == 0 {
			if c >= 'A' && c <= 'Z' {
				c = c - 'A' + 'a'
			}
			out = append(out, c)
			upperNext = false
			continue
		}
		if upperNext {
			if c >= 'a' && c <= 'z' {
				c = c - 'a' + 'A'
			}
			upperNext = false
		}
		out = append(out, c)
	}
	return string(out)
}
