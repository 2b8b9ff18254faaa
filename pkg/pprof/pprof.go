// Package pprof adds profiling flags to a program.
package pprof

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Flags holds the paths of the profiles to write. Empty paths disable the
// profiles.
type Flags struct {
	CPUProfile    string
	AllocsProfile string
}

// Register adds the --cpuprofile and --allocsprofile flags.
func (p *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&p.CPUProfile, "cpuprofile", "", "write CPU profile to file")
	fs.StringVar(&p.AllocsProfile, "allocsprofile", "", "write memory allocation profile to file")
}

// Start starts the CPU profile. The returned function stops it and writes the
// allocation profile. Profiles that cannot be created are reported to stderr
// and skipped.
func (p *Flags) Start(stderr io.Writer) (stop func()) {
	var cleanups []func()
	if p.CPUProfile != "" {
		f, err := os.Create(p.CPUProfile)
		if err != nil {
			fmt.Fprintln(stderr, "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(stderr, "Continuing without CPU profiling.")
		} else {
			pprof.StartCPUProfile(f)
			cleanups = append(cleanups, func() {
				pprof.StopCPUProfile()
				f.Close()
			})
		}
	}
	if p.AllocsProfile != "" {
		f, err := os.Create(p.AllocsProfile)
		if err != nil {
			fmt.Fprintln(stderr, "Warning: cannot create memory allocation profile:", err)
			fmt.Fprintln(stderr, "Continuing without memory allocation profiling.")
		} else {
			cleanups = append(cleanups, func() {
				pprof.Lookup("allocs").WriteTo(f, 0)
				f.Close()
			})
		}
	}
	return func() {
		for _, cleanup := range cleanups {
			cleanup()
		}
	}
}
