package testutil

import (
	"errors"
	"os"
	"testing"
	"time"
)

var scaledTests = []struct {
	env  string
	d    time.Duration
	want time.Duration
}{
	{"", time.Second, time.Second},
	{"2", time.Second, 2 * time.Second},
	{"0.5", time.Second, time.Second / 2},
	{"bad", time.Second, time.Second},
	{"-1", time.Second, time.Second},
}

func TestScaled(t *testing.T) {
	for _, test := range scaledTests {
		t.Setenv(TimeScaleEnv, test.env)
		if got := Scaled(test.d); got != test.want {
			t.Errorf("Scaled(%v) with scale %q = %v, want %v", test.d, test.env, got, test.want)
		}
	}
}

func TestSet(t *testing.T) {
	x := 1
	t.Run("inner", func(t *testing.T) {
		Set(t, &x, 2)
		if x != 2 {
			t.Errorf("x = %d inside, want 2", x)
		}
	})
	if x != 1 {
		t.Errorf("x = %d after cleanup, want 1", x)
	}
}

func TestMustWriteFile(t *testing.T) {
	fname := TempFile(t, "a/b/c")
	MustWriteFile(fname, "content")
	if got := string(Must1(os.ReadFile(fname))); got != "content" {
		t.Errorf("read %q, want %q", got, "content")
	}
}

func TestMust_Panics(t *testing.T) {
	want := errors.New("boom")
	defer func() {
		if r := recover(); r != want {
			t.Errorf("recovered %v, want %v", r, want)
		}
	}()
	Must(want)
}
