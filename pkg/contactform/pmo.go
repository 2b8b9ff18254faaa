package contactform

import (
	"errors"
	"fmt"

	"github.com/linkki-framework/linkki-sub003/pkg/message"
	"github.com/linkki-framework/linkki-sub003/pkg/recordstore"
)

// Kind is the record kind of contacts.
const Kind = "contact"

// ErrInvalid is returned when saving a contact with errors.
var ErrInvalid = errors.New("contact has errors")

// Record identifies a stored contact. The zero Record stands for a new
// contact that has not been saved.
type Record struct {
	ID   int
	Name string
}

func (r Record) String() string {
	if r.ID == 0 {
		return "(new contact)"
	}
	return fmt.Sprintf("#%d %s", r.ID, r.Name)
}

// ContactPmo presents one contact at a time. Selecting a record replaces
// the contact.
type ContactPmo struct {
	contacts recordstore.Table[Contact]
	record   Record
	contact  *Contact
}

// NewContactPmo returns a ContactPmo presenting a new contact.
func NewContactPmo(contacts recordstore.Table[Contact]) *ContactPmo {
	return &ContactPmo{contacts: contacts, contact: &Contact{}}
}

func (p *ContactPmo) GetModelObject() *Contact { return p.contact }

func (p *ContactPmo) GetRecord() Record { return p.record }

// SetRecord loads the contact of the record.
func (p *ContactPmo) SetRecord(r Record) error {
	if r.ID == 0 {
		p.record, p.contact = Record{}, &Contact{}
		return nil
	}
	c, err := p.contacts.Get(r.ID)
	if err != nil {
		return fmt.Errorf("load contact %d: %w", r.ID, err)
	}
	p.record, p.contact = Record{r.ID, c.Name()}, &c
	return nil
}

// GetRecordAvailableValues returns a new contact followed by all stored
// contacts.
func (p *ContactPmo) GetRecordAvailableValues() ([]Record, error) {
	ids, err := p.contacts.IDs()
	if err != nil {
		return nil, err
	}
	records := []Record{{}}
	for _, id := range ids {
		if id == p.record.ID {
			records = append(records, p.record)
			continue
		}
		c, err := p.contacts.Get(id)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{id, c.Name()})
	}
	return records, nil
}

func (p *ContactPmo) GetFullName() string { return p.contact.Name() }

func (p *ContactPmo) IsEmailRequired() bool { return p.contact.Newsletter }
func (p *ContactPmo) IsPhoneEnabled() bool  { return p.contact.CallMe }

// IsPhoneRequired reports true; the phone is only asked for when it is
// enabled.
func (p *ContactPmo) IsPhoneRequired() bool { return true }

// Validate validates the contact.
func (p *ContactPmo) Validate() message.List { return Validate(p.contact) }

func (p *ContactPmo) IsSaveEnabled() bool { return !p.Validate().ContainsErrors() }

func (p *ContactPmo) GetSaveCaption() string {
	if p.record.ID == 0 {
		return "Create"
	}
	return "Save"
}

// Save stores the contact.
func (p *ContactPmo) Save() error {
	if p.Validate().ContainsErrors() {
		return ErrInvalid
	}
	if p.record.ID == 0 {
		id, err := p.contacts.Add(*p.contact)
		if err != nil {
			return err
		}
		p.record.ID = id
	} else if err := p.contacts.Put(p.record.ID, *p.contact); err != nil {
		return err
	}
	p.record.Name = p.contact.Name()
	return nil
}

func (p *ContactPmo) IsDeleteEnabled() bool { return p.record.ID != 0 }

// Delete deletes the stored contact and presents a new one.
func (p *ContactPmo) Delete() error {
	if err := p.contacts.Delete(p.record.ID); err != nil {
		return err
	}
	return p.SetRecord(Record{})
}
