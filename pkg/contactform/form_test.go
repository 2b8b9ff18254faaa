package contactform

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linkki-framework/linkki-sub003/pkg/behavior"
	"github.com/linkki-framework/linkki-sub003/pkg/dispatch"
	"github.com/linkki-framework/linkki-sub003/pkg/recordstore"
	"github.com/linkki-framework/linkki-sub003/pkg/widget"
)

func newForm(t *testing.T, f *dispatch.Factory) (*Form, recordstore.Table[Contact]) {
	t.Helper()
	s, err := recordstore.Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	contacts := recordstore.NewTable[Contact](s, Kind)
	form, err := New(contacts, f)
	if err != nil {
		t.Fatal(err)
	}
	return form, contacts
}

func get[T widget.Widget](t *testing.T, f *Form, id string) T {
	t.Helper()
	w, ok := f.Widgets().Widget(id)
	if !ok {
		t.Fatalf("no widget %q", id)
	}
	return w.(T)
}

func text(t *testing.T, f *Form, id string) *widget.TextField {
	t.Helper()
	return get[*widget.TextField](t, f, id)
}

func codes(s widget.State) []string {
	var cs []string
	for _, m := range s.Messages {
		cs = append(cs, m.Code)
	}
	return cs
}

func fill(t *testing.T, f *Form, values map[string]string) {
	t.Helper()
	for id, v := range values {
		if err := text(t, f, id).Edit(v); err != nil {
			t.Fatalf("edit %s: %v", id, err)
		}
	}
}

func TestNew(t *testing.T) {
	f, _ := newForm(t, nil)
	last := text(t, f, "lastName").State()
	if !last.Required || last.Caption != "Last name" {
		t.Errorf("lastName state %+v", last)
	}
	if diff := cmp.Diff([]string{LastNameRequired}, codes(last)); diff != "" {
		t.Errorf("lastName messages (-want +got):\n%s", diff)
	}
	save := get[*widget.Button](t, f, "save").State()
	if save.Enabled || save.Caption != "Create" {
		t.Errorf("save state %+v", save)
	}
	if get[*widget.Button](t, f, "delete").State().Enabled {
		t.Errorf("delete enabled for a new contact")
	}
	if !text(t, f, "fullName").State().ReadOnly {
		t.Errorf("fullName is not read-only")
	}
	gender := get[*widget.Select](t, f, "gender").State()
	if diff := cmp.Diff([]any{"unknown", "female", "male", "diverse"}, gender.Items); diff != "" {
		t.Errorf("gender items (-want +got):\n%s", diff)
	}
}

func TestSaveAndSelect(t *testing.T) {
	f, contacts := newForm(t, nil)
	fill(t, f, map[string]string{"firstName": "Ada", "lastName": "Lovelace", "age": "36"})
	if err := get[*widget.Select](t, f, "gender").Choose(1); err != nil {
		t.Fatal(err)
	}
	if got := text(t, f, "fullName").Value(); got != "Ada Lovelace" {
		t.Errorf("fullName = %v", got)
	}
	if err := get[*widget.Button](t, f, "save").Click(); err != nil {
		t.Fatal(err)
	}

	stored, err := contacts.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	want := Contact{FirstName: "Ada", LastName: "Lovelace", Gender: Female, Age: 36}
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Errorf("stored contact (-want +got):\n%s", diff)
	}
	if got := get[*widget.Button](t, f, "save").State().Caption; got != "Save" {
		t.Errorf("save caption after create = %q", got)
	}

	record := get[*widget.Select](t, f, "record")
	if diff := cmp.Diff([]any{"(new contact)", "#1 Ada Lovelace"}, record.State().Items); diff != "" {
		t.Errorf("record items (-want +got):\n%s", diff)
	}

	// Switching the record replaces the domain object.
	if err := record.Choose(0); err != nil {
		t.Fatal(err)
	}
	if got := text(t, f, "lastName").Value(); got != "" {
		t.Errorf("lastName of new contact = %v", got)
	}
	if err := record.Choose(1); err != nil {
		t.Fatal(err)
	}
	if got := text(t, f, "firstName").Value(); got != "Ada" {
		t.Errorf("firstName after selecting record = %v", got)
	}
	if !get[*widget.Button](t, f, "delete").State().Enabled {
		t.Errorf("delete disabled for a stored contact")
	}
}

func TestDynamicFacets(t *testing.T) {
	f, _ := newForm(t, nil)
	email, phone := text(t, f, "email"), text(t, f, "phone")
	if email.State().Required || phone.State().Enabled || phone.State().Required {
		t.Fatalf("email %+v, phone %+v", email.State(), phone.State())
	}

	if err := get[*widget.CheckBox](t, f, "newsletter").Toggle(); err != nil {
		t.Fatal(err)
	}
	if !email.State().Required {
		t.Errorf("email not required with newsletter")
	}
	if diff := cmp.Diff([]string{EmailRequired}, codes(email.State())); diff != "" {
		t.Errorf("email messages (-want +got):\n%s", diff)
	}

	if err := get[*widget.CheckBox](t, f, "callMe").Toggle(); err != nil {
		t.Fatal(err)
	}
	if !phone.State().Enabled || !phone.State().Required {
		t.Errorf("phone not enabled and required with call back: %+v", phone.State())
	}
}

func TestInvalidInput(t *testing.T) {
	f, _ := newForm(t, nil)
	age := text(t, f, "age")
	if err := age.Edit("old"); err != nil {
		t.Fatal(err)
	}
	if f.Pmo().GetModelObject().Age != 0 {
		t.Errorf("age changed by invalid input")
	}
	msgs := age.State().Messages
	if len(msgs) != 1 || msgs[0].Severity != "warning" {
		t.Errorf("got messages %v, want one warning", msgs)
	}

	if err := age.Edit("130"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{AgeUnlikely}, codes(age.State())); diff != "" {
		t.Errorf("age messages (-want +got):\n%s", diff)
	}
}

func TestSave_Invalid(t *testing.T) {
	f, _ := newForm(t, nil)
	if err := f.Pmo().Save(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Save of invalid contact returned %v", err)
	}
	if err := get[*widget.Button](t, f, "save").Click(); !errors.Is(err, widget.ErrNotEditable) {
		t.Errorf("Click on disabled save returned %v", err)
	}
}

func TestDelete(t *testing.T) {
	f, contacts := newForm(t, nil)
	fill(t, f, map[string]string{"lastName": "Hopper"})
	if err := get[*widget.Button](t, f, "save").Click(); err != nil {
		t.Fatal(err)
	}
	if err := get[*widget.Button](t, f, "delete").Click(); err != nil {
		t.Fatal(err)
	}
	if ids, _ := contacts.IDs(); len(ids) != 0 {
		t.Errorf("got IDs %v after delete", ids)
	}
	if got := text(t, f, "lastName").Value(); got != "" {
		t.Errorf("lastName after delete = %v", got)
	}
}

func TestBehaviors(t *testing.T) {
	r := behavior.NewReloadable(behavior.List{
		behavior.HiddenProperties(behavior.NewProperties("ContactPmo.age")),
	})
	f, _ := newForm(t, &dispatch.Factory{Behaviors: r})
	if text(t, f, "age").State().Visible {
		t.Errorf("age visible although hidden")
	}

	r.Set(behavior.List{behavior.ReadOnly})
	if err := f.Refresh(); err != nil {
		t.Fatal(err)
	}
	if !text(t, f, "age").State().Visible {
		t.Errorf("age still hidden after reload")
	}
	first := text(t, f, "firstName")
	if first.State().Enabled || !first.State().ReadOnly {
		t.Errorf("firstName editable in read-only mode: %+v", first.State())
	}
	if err := first.Edit("x"); !errors.Is(err, widget.ErrNotEditable) {
		t.Errorf("Edit in read-only mode returned %v", err)
	}

	f.Pmo().GetModelObject().SetCallMe(true)
	if err := f.Refresh(); err != nil {
		t.Fatal(err)
	}
	if phone := text(t, f, "phone").State(); phone.Enabled || phone.Required {
		t.Errorf("phone enabled or required in read-only mode: %+v", phone)
	}
}

func TestValidate(t *testing.T) {
	c := &Contact{LastName: "L", Email: "nope", Age: -1}
	var got []string
	for _, m := range Validate(c) {
		got = append(got, m.Code)
	}
	if diff := cmp.Diff([]string{EmailInvalid, AgeInvalid}, got); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}
