package ast

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// Description is a generic, serializable view of a node used for dumps.
type Description struct {
	Field    string         `json:"field,omitempty" yaml:"field,omitempty"`
	Type     string         `json:"type" yaml:"type"`
	Span     string         `json:"span,omitempty" yaml:"span,omitempty"`
	Attrs    []Attr         `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*Description `json:"children,omitempty" yaml:"children,omitempty"`
}

// Attr is a scalar field of a node.
type Attr struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// Describe builds a Description of the tree rooted at node. Zero-valued
// scalar fields and nil children are omitted; field order follows the
// struct declaration.
func Describe(node Node) *Description {
	if isNil(node) {
		return nil
	}
	return describe("", reflect.ValueOf(node))
}

func describe(field string, v reflect.Value) *Description {
	elem := v.Elem()
	d := &Description{Field: field, Type: elem.Type().Name()}
	if n, ok := v.Interface().(Node); ok && n.Pos().IsValid() {
		d.Span = fmt.Sprintf("%s-%s", n.Pos(), n.End())
	}

	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		fv := elem.Field(i)
		switch {
		case isNodeValue(fv):
			if child := describeValue(sf.Name, fv); child != nil {
				d.Children = append(d.Children, child)
			}
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() != reflect.String:
			for j := 0; j < fv.Len(); j++ {
				if child := describeValue(sf.Name, fv.Index(j)); child != nil {
					d.Children = append(d.Children, child)
				}
			}
		default:
			if s, ok := scalarString(fv); ok {
				d.Attrs = append(d.Attrs, Attr{Name: sf.Name, Value: s})
			}
		}
	}
	return d
}

func isNodeValue(v reflect.Value) bool {
	return v.Type().Implements(nodeType) || v.Kind() == reflect.Interface
}

func describeValue(field string, v reflect.Value) *Description {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	return describe(field, v)
}

func scalarString(v reflect.Value) (string, bool) {
	if v.IsZero() {
		return "", false
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = v.Index(i).String()
		}
		return strings.Join(parts, ", "), true
	}
	return "", false
}

// Fprint writes an indented tree dump of node to w.
func Fprint(w io.Writer, node Node) error {
	d := Describe(node)
	if d == nil {
		_, err := fmt.Fprintln(w, "<nil>")
		return err
	}
	var b strings.Builder
	d.write(&b, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the description as an indented tree.
func (d *Description) String() string {
	var b strings.Builder
	d.write(&b, 0)
	return b.String()
}

func (d *Description) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if d.Field != "" {
		b.WriteString(d.Field)
		b.WriteString(": ")
	}
	b.WriteString(d.Type)
	for _, a := range d.Attrs {
		fmt.Fprintf(b, " %s=%q", a.Name, a.Value)
	}
	if d.Span != "" {
		fmt.Fprintf(b, " @%s", d.Span)
	}
	b.WriteByte('\n')
	for _, c := range d.Children {
		c.write(b, depth+1)
	}
}
