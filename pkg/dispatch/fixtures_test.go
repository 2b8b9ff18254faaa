package dispatch

import "errors"

var errBroken = errors.New("broken")

type gender string

func (gender) EnumValues() []any { return []any{gender("f"), gender("m"), gender("d")} }

// Domain objects.

type contact struct {
	name       string
	age        int
	city       string
	fooEnabled bool
	Gender     gender
	Active     bool
}

func (c *contact) GetName() string         { return c.name }
func (c *contact) SetName(name string)     { c.name = name }
func (c *contact) GetAge() int             { return c.age }
func (c *contact) SetAge(age int)          { c.age = age }
func (c *contact) GetCity() string         { return c.city }
func (c *contact) GetFoo() string          { return "foo" }
func (c *contact) IsFooEnabled() bool      { return c.fooEnabled }
func (c *contact) IsCityVisible() bool     { return true }
func (c *contact) GetBroken() (int, error) { return 0, errBroken }

type address struct{ Street string }

// Presentation model.

type contactPmo struct {
	model   *contact
	address *address

	title         string
	titleEnabled  bool
	titleRequired bool
	saved         int
}

func (p *contactPmo) GetModelObject() *contact { return p.model }
func (p *contactPmo) GetAddress() *address     { return p.address }

// Takes precedence over contact.GetCity.
func (p *contactPmo) GetCity() string { return "pmo city" }

func (p *contactPmo) GetTitle() string      { return p.title }
func (p *contactPmo) IsTitleEnabled() bool  { return p.titleEnabled }
func (p *contactPmo) IsTitleRequired() bool { return p.titleRequired }
func (p *contactPmo) IsTitleVisible() bool  { return false }
func (p *contactPmo) GetTitleAvailableValues() []string {
	return []string{"Dr.", "Prof."}
}
func (p *contactPmo) GetTitleCaption() string { return "Title" }

func (p *contactPmo) Save() error {
	p.saved++
	return nil
}

func (p *contactPmo) Fail() error { return errBroken }

func newContactPmo() *contactPmo {
	return &contactPmo{
		model:   &contact{name: "Ada", age: 36, city: "London", fooEnabled: true, Gender: "f"},
		address: &address{"Main St"},
		title:   "Dr.",
	}
}
