// Package contactform is an example form that edits contacts stored in a
// record store.
package contactform

import (
	"strings"

	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

// Gender of a contact.
type Gender int

// Genders.
const (
	GenderUnknown Gender = iota
	Female
	Male
	Diverse
)

var genderNames = [...]string{"unknown", "female", "male", "diverse"}

func (g Gender) String() string {
	if g < 0 || int(g) >= len(genderNames) {
		return "unknown"
	}
	return genderNames[g]
}

// EnumValues returns all genders.
func (Gender) EnumValues() []any {
	return []any{GenderUnknown, Female, Male, Diverse}
}

// Contact is the domain object edited by the form.
type Contact struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Gender     Gender `json:"gender"`
	Age        int    `json:"age"`
	Newsletter bool   `json:"newsletter"`
	Email      string `json:"email"`
	CallMe     bool   `json:"callMe"`
	Phone      string `json:"phone"`
}

func (c *Contact) SetFirstName(s string) { c.FirstName = s }
func (c *Contact) SetLastName(s string)  { c.LastName = s }
func (c *Contact) SetGender(g Gender)    { c.Gender = g }
func (c *Contact) SetAge(a int)          { c.Age = a }
func (c *Contact) SetNewsletter(b bool)  { c.Newsletter = b }
func (c *Contact) SetEmail(s string)     { c.Email = s }
func (c *Contact) SetCallMe(b bool)      { c.CallMe = b }
func (c *Contact) SetPhone(s string)     { c.Phone = s }

// Name returns the full name of the contact.
func (c *Contact) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Message codes.
const (
	LastNameRequired = "LAST_NAME_REQUIRED"
	EmailRequired    = "EMAIL_REQUIRED"
	EmailInvalid     = "EMAIL_INVALID"
	PhoneRequired    = "PHONE_REQUIRED"
	AgeInvalid       = "AGE_INVALID"
	AgeUnlikely      = "AGE_UNLIKELY"
)

// Validate returns the messages about the contact.
func Validate(c *Contact) message.List {
	var l message.List
	add := func(sev message.Severity, code, text, property string) {
		l = append(l, message.New(sev, code, text, message.On(c, property)))
	}
	if strings.TrimSpace(c.LastName) == "" {
		add(message.Error, LastNameRequired, "last name is required", "lastName")
	}
	switch {
	case c.Email == "" && c.Newsletter:
		add(message.Error, EmailRequired, "email is required for the newsletter", "email")
	case c.Email != "" && !strings.Contains(c.Email, "@"):
		add(message.Error, EmailInvalid, "email must contain @", "email")
	}
	if c.CallMe && strings.TrimSpace(c.Phone) == "" {
		add(message.Error, PhoneRequired, "phone is required to call back", "phone")
	}
	switch {
	case c.Age < 0:
		add(message.Error, AgeInvalid, "age must not be negative", "age")
	case c.Age > 120:
		add(message.Warning, AgeUnlikely, "age is unlikely", "age")
	}
	return l
}
