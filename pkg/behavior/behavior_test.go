package behavior

import (
	"testing"

	. "github.com/linkki-framework/linkki-sub003/pkg/tt"
)

type Contact struct{}

type Address struct{}

func TestIsWritable(t *testing.T) {
	Test(t, Fn("IsWritable", IsWritable), Table{
		Args(nil, &Contact{}, "name").Rets(true),
		Args(List{}, &Contact{}, "name").Rets(true),
		Args(List{ReadOnly}, &Contact{}, "name").Rets(false),
		Args(List{Funcs{}, ReadOnly}, &Contact{}, "name").Rets(false),
		Args(List{HiddenProperties(NewProperties("name"))}, &Contact{}, "name").Rets(true),
	})
}

func TestIsVisible(t *testing.T) {
	hidden := List{HiddenProperties(NewProperties("note", "Contact.email"))}
	Test(t, Fn("IsVisible", IsVisible), Table{
		Args(nil, &Contact{}, "note").Rets(true),
		Args(List{ReadOnly}, &Contact{}, "note").Rets(true),
		Args(hidden, &Contact{}, "note").Rets(false),
		Args(hidden, &Address{}, "note").Rets(false),
		Args(hidden, &Contact{}, "email").Rets(false),
		Args(hidden, Contact{}, "email").Rets(false),
		Args(hidden, &Address{}, "email").Rets(true),
		Args(hidden, nil, "email").Rets(true),
	})
}

func TestIsEmpty(t *testing.T) {
	Test(t, Fn("IsEmpty", IsEmpty), Table{
		Args(nil).Rets(true),
		Args(List(nil)).Rets(true),
		Args(List{ReadOnly}).Rets(false),
		Args(&Reloadable{}).Rets(false),
	})
}

func TestValidPattern(t *testing.T) {
	Test(t, Fn("validPattern", validPattern), Table{
		Args("name").Rets(true),
		Args("Contact.name").Rets(true),
		Args("").Rets(false),
		Args("first name").Rets(false),
		Args(".name").Rets(false),
		Args("Contact.").Rets(false),
		Args("a.b.c").Rets(false),
	})
}
