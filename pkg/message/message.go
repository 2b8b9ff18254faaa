// Package message contains validation messages and lists of them.
//
// The validation layer produces a flat List; each Message references the
// objects and properties it is about, and the dispatch layer routes messages
// to bound properties with List.For.
package message

import (
	"fmt"
	"reflect"
	"strings"
)

// Severity is the severity of a Message. The zero value means no severity
// and is only returned by List.Severity of an empty list.
type Severity uint8

// Possible values of Severity, ordered by increasing severity.
const (
	None Severity = iota
	Info
	Warning
	Error
)

var severityNames = [...]string{"none", "info", "warning", "error"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// NoIndex is the index of a reference to a property that is not indexed.
const NoIndex = -1

// ObjectProperty references a property of an object, and optionally an
// index within that property.
type ObjectProperty struct {
	Object   any
	Property string
	Index    int
}

// On returns a reference to a property without an index.
func On(object any, property string) ObjectProperty {
	return ObjectProperty{object, property, NoIndex}
}

// OnIndex returns a reference to the entry at index i of a property.
func OnIndex(object any, property string, i int) ObjectProperty {
	return ObjectProperty{object, property, i}
}

// Matches reports whether the reference is about the given property of the
// object. Objects match by identity, so only objects of pointer-like kinds
// can match; two equal struct values are distinct objects and never match.
// An index less than zero matches any index.
func (r ObjectProperty) Matches(object any, property string, index int) bool {
	if r.Property != property || !sameObject(r.Object, object) {
		return false
	}
	return index < 0 || r.Index == index
}

func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}

// Message is a validation message.
type Message struct {
	Code     string
	Text     string
	Severity Severity
	Refs     []ObjectProperty
}

// New returns a Message about the given references.
func New(severity Severity, code, text string, refs ...ObjectProperty) Message {
	return Message{code, text, severity, refs}
}

// About reports whether the message references the given property of the
// object. See ObjectProperty.Matches.
func (m Message) About(object any, property string, index int) bool {
	for _, r := range m.Refs {
		if r.Matches(object, property, index) {
			return true
		}
	}
	return false
}

func (m Message) String() string {
	if m.Code == "" {
		return fmt.Sprintf("%v: %s", m.Severity, m.Text)
	}
	return fmt.Sprintf("%v [%s]: %s", m.Severity, m.Code, m.Text)
}

// List is a list of messages. A nil List is empty.
type List []Message

// For returns the messages about the given property of the object, in
// order. An index less than zero matches messages about any index.
func (l List) For(object any, property string, index int) List {
	var matched List
	for _, m := range l {
		if m.About(object, property, index) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Severity returns the highest severity in the list, or None if it is empty.
func (l List) Severity() Severity {
	s := None
	for _, m := range l {
		if m.Severity > s {
			s = m.Severity
		}
	}
	return s
}

// ContainsErrors reports whether the list contains a message of severity
// Error.
func (l List) ContainsErrors() bool { return l.Severity() >= Error }

// BySeverity returns the messages of the given severity, in order.
func (l List) BySeverity(s Severity) List {
	var matched List
	for _, m := range l {
		if m.Severity == s {
			matched = append(matched, m)
		}
	}
	return matched
}

func (l List) String() string {
	var sb strings.Builder
	for i, m := range l {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
