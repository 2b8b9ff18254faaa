package sys

import (
	"os"
	"testing"
)

func TestIsFileATTY_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if IsFileATTY(r) {
		t.Errorf("IsFileATTY(pipe) = true, want false")
	}
	if IsFileATTY(nil) {
		t.Errorf("IsFileATTY(nil) = true, want false")
	}
}
