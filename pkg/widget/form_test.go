package widget

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForm(t *testing.T) {
	name, save := NewTextField("name"), NewButton("save")
	f := NewForm(name, save)

	if w, ok := f.Widget("save"); !ok || w != save {
		t.Errorf("Widget(save) = %v, %v", w, ok)
	}
	if _, ok := f.Widget("missing"); ok {
		t.Errorf("Widget(missing) found a widget")
	}
	if len(f.States()) != 2 {
		t.Errorf("got %d states, want 2", len(f.States()))
	}
}

func TestForm_DuplicateID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Add with duplicate ID did not panic")
		}
	}()
	NewForm(NewTextField("x"), NewButton("x"))
}

func TestForm_Changes(t *testing.T) {
	name, city := NewTextField("name"), NewTextField("city")
	f := NewForm(name, city)
	snap := f.Snapshot()

	if changes := f.Changes(snap); len(changes) != 0 {
		t.Errorf("got changes without any modification: %v", changes)
	}

	city.SetValue("Berlin")
	want := []State{city.State()}
	if diff := cmp.Diff(want, f.Changes(snap)); diff != "" {
		t.Errorf("Changes (-want +got):\n%s", diff)
	}
	if changes := f.Changes(nil); len(changes) != 2 {
		t.Errorf("got %d changes since empty snapshot, want 2", len(changes))
	}
}
