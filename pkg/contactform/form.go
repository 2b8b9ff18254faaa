package contactform

import (
	"github.com/linkki-framework/linkki-sub003/pkg/aspectdef"
	"github.com/linkki-framework/linkki-sub003/pkg/bind"
	"github.com/linkki-framework/linkki-sub003/pkg/binding"
	"github.com/linkki-framework/linkki-sub003/pkg/dispatch"
	"github.com/linkki-framework/linkki-sub003/pkg/recordstore"
	"github.com/linkki-framework/linkki-sub003/pkg/widget"
)

// Form is the contact form: a ContactPmo bound to widgets.
type Form struct {
	pmo     *ContactPmo
	widgets *widget.Form
	ctx     *bind.Context
}

type field struct {
	widget  aspectdef.Component
	desc    binding.Descriptor
	caption string
	defs    []aspectdef.Definition
}

func model(name string, policy binding.Policy) binding.Descriptor {
	return binding.Descriptor{
		Property: binding.NewProperty(name).WithModelAttribute(""),
		Policy:   &policy,
	}
}

func pmo(name string, policy binding.Policy) binding.Descriptor {
	return binding.Bind(name, &policy)
}

// New returns a Form presenting a new contact. The factory decides the
// behaviors and the accessor cache; nil means the defaults.
func New(contacts recordstore.Table[Contact], f *dispatch.Factory) (*Form, error) {
	p := NewContactPmo(contacts)
	form := &Form{pmo: p, ctx: bind.NewContext("contact", f, p.Validate)}

	value := aspectdef.Value{}
	fields := []field{
		{widget.NewSelect("record"), pmo("record", binding.Policy{AvailableValues: binding.DynamicValues}),
			"Contact", []aspectdef.Definition{value, aspectdef.AvailableValues{}}},
		{widget.NewTextField("fullName"), pmo("fullName", binding.Policy{}),
			"Name", []aspectdef.Definition{value}},
		{widget.NewTextField("firstName"), model("firstName", binding.Policy{}),
			"First name", []aspectdef.Definition{value}},
		{widget.NewTextField("lastName"), model("lastName", binding.Policy{Required: binding.Required}),
			"Last name", []aspectdef.Definition{value, aspectdef.Required{}}},
		{widget.NewSelect("gender"), model("gender", binding.Policy{}),
			"Gender", []aspectdef.Definition{value, aspectdef.AvailableValues{}}},
		{widget.NewTextField("age"), model("age", binding.Policy{}),
			"Age", []aspectdef.Definition{value}},
		{widget.NewCheckBox("newsletter"), model("newsletter", binding.Policy{}),
			"Newsletter", []aspectdef.Definition{value}},
		{widget.NewTextField("email"), model("email", binding.Policy{Required: binding.DynamicRequired}),
			"Email", []aspectdef.Definition{value, aspectdef.Required{}}},
		{widget.NewCheckBox("callMe"), model("callMe", binding.Policy{}),
			"Call me", []aspectdef.Definition{value}},
		{widget.NewTextField("phone"), model("phone", binding.Policy{Enabled: binding.DynamicEnabled, Required: binding.RequiredIfEnabled}),
			"Phone", []aspectdef.Definition{value, aspectdef.Required{}}},
		{widget.NewButton("save"), pmo("save", binding.Policy{Enabled: binding.DynamicEnabled}),
			"", []aspectdef.Definition{aspectdef.Action{}}},
		{widget.NewButton("delete"), pmo("delete", binding.Policy{Enabled: binding.DynamicEnabled}),
			"Delete", []aspectdef.Definition{aspectdef.Action{}}},
	}

	form.widgets = widget.NewForm()
	for _, fd := range fields {
		defs := append(fd.defs, aspectdef.Enabled{}, aspectdef.Visible{}, aspectdef.Caption{Text: fd.caption})
		if _, err := form.ctx.Bind(p, fd.desc, fd.widget, aspectdef.Compose(defs...)); err != nil {
			return nil, err
		}
		form.widgets.Add(fd.widget.(widget.Widget))
	}
	if err := form.ctx.ModelChanged(); err != nil {
		return nil, err
	}
	return form, nil
}

// Pmo returns the presentation model.
func (f *Form) Pmo() *ContactPmo { return f.pmo }

// Context returns the binding context.
func (f *Form) Context() *bind.Context { return f.ctx }

// Widgets returns the widgets of the form.
func (f *Form) Widgets() *widget.Form { return f.widgets }

// Refresh validates the contact and updates all widgets.
func (f *Form) Refresh() error { return f.ctx.ModelChanged() }
