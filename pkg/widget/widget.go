// Package widget contains in-memory UI components. They keep the state set
// by aspect definitions and expose it as State values, and they accept user
// input through methods like Edit and Click.
package widget

import (
	"errors"
	"fmt"

	"github.com/linkki-framework/linkki-sub003/pkg/convert"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

// Kinds of widgets.
const (
	TextKind     = "text"
	CheckBoxKind = "checkbox"
	SelectKind   = "select"
	ButtonKind   = "button"
)

var (
	// ErrNotEditable is returned when editing a widget that is read-only,
	// disabled, hidden or not bound.
	ErrNotEditable = errors.New("widget is not editable")
	// ErrNoSuchItem is returned when selecting an item that does not exist.
	ErrNoSuchItem = errors.New("no such item")
)

// Widget is a component with an observable state.
type Widget interface {
	ID() string
	State() State
}

// State is the state of a widget. Values and items are in their
// presentation form.
type State struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Caption  string         `json:"caption,omitempty"`
	Value    any            `json:"value,omitempty"`
	Items    []any          `json:"items,omitempty"`
	Enabled  bool           `json:"enabled"`
	Visible  bool           `json:"visible"`
	Required bool           `json:"required,omitempty"`
	ReadOnly bool           `json:"readOnly,omitempty"`
	Messages []MessageState `json:"messages,omitempty"`
}

// MessageState is the presentation of a message.
type MessageState struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Text     string `json:"text"`
}

// Common state of all widgets.
type base struct {
	id       string
	kind     string
	caption  string
	enabled  bool
	visible  bool
	required bool
	messages message.List
}

func newBase(id, kind string) base {
	return base{id: id, kind: kind, enabled: true, visible: true}
}

func (b *base) ID() string                 { return b.id }
func (b *base) SetCaption(s string)        { b.caption = s }
func (b *base) SetEnabled(e bool)          { b.enabled = e }
func (b *base) SetVisible(v bool)          { b.visible = v }
func (b *base) SetRequired(r bool)         { b.required = r }
func (b *base) SetMessages(l message.List) { b.messages = l }
func (b *base) Messages() message.List     { return b.messages }

func (b *base) state() State {
	s := State{
		ID: b.id, Kind: b.kind, Caption: b.caption,
		Enabled: b.enabled, Visible: b.visible, Required: b.required,
	}
	for _, m := range b.messages {
		s.Messages = append(s.Messages, MessageState{m.Severity.String(), m.Code, m.Text})
	}
	return s
}

// Returns nil if the user may interact with the widget.
func (b *base) interactive() error {
	if !b.enabled || !b.visible {
		return fmt.Errorf("%s: %w", b.id, ErrNotEditable)
	}
	return nil
}

// TextField holds a text.
type TextField struct {
	base
	text     string
	readOnly bool
	onEdit   func(raw any) error
}

// NewTextField returns an enabled and visible TextField.
func NewTextField(id string) *TextField {
	return &TextField{base: newBase(id, TextKind)}
}

// Value returns the text.
func (t *TextField) Value() any { return t.text }

// SetValue sets the text to the presentation of v.
func (t *TextField) SetValue(v any) { t.text = text(v) }

func (t *TextField) SetReadOnly(r bool)           { t.readOnly = r }
func (t *TextField) OnEdit(f func(raw any) error) { t.onEdit = f }

// Edit sets the text as if the user typed it.
func (t *TextField) Edit(s string) error {
	if err := t.interactive(); err != nil {
		return err
	}
	if t.readOnly || t.onEdit == nil {
		return fmt.Errorf("%s: %w", t.id, ErrNotEditable)
	}
	t.text = s
	return t.onEdit(s)
}

func (t *TextField) State() State {
	s := t.state()
	s.Value, s.ReadOnly = t.text, t.readOnly
	return s
}

func text(v any) string {
	switch p := convert.ToPresentation(v).(type) {
	case nil:
		return ""
	case string:
		return p
	default:
		return fmt.Sprint(p)
	}
}

// CheckBox holds a bool.
type CheckBox struct {
	base
	checked  bool
	readOnly bool
	onEdit   func(raw any) error
}

// NewCheckBox returns an enabled and visible CheckBox.
func NewCheckBox(id string) *CheckBox {
	return &CheckBox{base: newBase(id, CheckBoxKind)}
}

func (c *CheckBox) Value() any { return c.checked }

// SetValue checks the box if v is true.
func (c *CheckBox) SetValue(v any) {
	b, _ := v.(bool)
	c.checked = b
}

func (c *CheckBox) SetReadOnly(r bool)           { c.readOnly = r }
func (c *CheckBox) OnEdit(f func(raw any) error) { c.onEdit = f }

// Toggle checks or unchecks the box as if the user clicked it.
func (c *CheckBox) Toggle() error {
	if err := c.interactive(); err != nil {
		return err
	}
	if c.readOnly || c.onEdit == nil {
		return fmt.Errorf("%s: %w", c.id, ErrNotEditable)
	}
	c.checked = !c.checked
	return c.onEdit(c.checked)
}

func (c *CheckBox) State() State {
	s := c.state()
	s.Value, s.ReadOnly = c.checked, c.readOnly
	return s
}

// Select offers a list of items, one of which may be selected.
type Select struct {
	base
	items    []any
	selected any
	readOnly bool
	onEdit   func(raw any) error
}

// NewSelect returns an enabled and visible Select without items.
func NewSelect(id string) *Select {
	return &Select{base: newBase(id, SelectKind)}
}

func (s *Select) Value() any                   { return s.selected }
func (s *Select) SetValue(v any)               { s.selected = v }
func (s *Select) SetItems(items []any)         { s.items = items }
func (s *Select) Items() []any                 { return s.items }
func (s *Select) SetReadOnly(r bool)           { s.readOnly = r }
func (s *Select) OnEdit(f func(raw any) error) { s.onEdit = f }

// Choose selects the item at index i as if the user chose it.
func (s *Select) Choose(i int) error {
	if err := s.interactive(); err != nil {
		return err
	}
	if s.readOnly || s.onEdit == nil {
		return fmt.Errorf("%s: %w", s.id, ErrNotEditable)
	}
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("%s: %w: %d", s.id, ErrNoSuchItem, i)
	}
	s.selected = s.items[i]
	return s.onEdit(s.selected)
}

func (s *Select) State() State {
	st := s.state()
	st.Value, st.ReadOnly = text(s.selected), s.readOnly
	for _, item := range s.items {
		st.Items = append(st.Items, text(item))
	}
	return st
}

// Button triggers an action.
type Button struct {
	base
	onClick func() error
}

// NewButton returns an enabled and visible Button.
func NewButton(id string) *Button {
	return &Button{base: newBase(id, ButtonKind)}
}

func (b *Button) OnClick(f func() error) { b.onClick = f }

// Click clicks the button.
func (b *Button) Click() error {
	if err := b.interactive(); err != nil {
		return err
	}
	if b.onClick == nil {
		return fmt.Errorf("%s: %w", b.id, ErrNotEditable)
	}
	return b.onClick()
}

func (b *Button) State() State { return b.state() }
