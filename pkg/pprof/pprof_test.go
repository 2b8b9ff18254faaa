package pprof

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var p Flags
	p.Register(fs)
	dir := t.TempDir()
	cpu, allocs := filepath.Join(dir, "cpuprof"), filepath.Join(dir, "allocsprof")
	if err := fs.Parse([]string{"--cpuprofile", cpu, "--allocsprofile", allocs}); err != nil {
		t.Fatal(err)
	}

	var stderr strings.Builder
	p.Start(&stderr)()

	// There isn't much to test beyond a sanity check that the profiles exist.
	for _, path := range []string{cpu, allocs} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("profile does not exist: %v", err)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("got warnings %q", stderr.String())
	}
}

func TestFlags_BadPath(t *testing.T) {
	p := Flags{CPUProfile: "/a/bad/path", AllocsProfile: "/a/bad/path"}
	var stderr strings.Builder
	p.Start(&stderr)()
	for _, want := range []string{
		"Warning: cannot create CPU profile:",
		"Warning: cannot create memory allocation profile:",
	} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr %q does not contain %q", stderr.String(), want)
		}
	}
}
