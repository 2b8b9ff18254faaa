// Package logutil provides logging utilities.
//
// Loggers obtained from GetLogger write nowhere until an output is configured
// with SetOutput or SetOutputFile; this keeps library packages silent unless a
// program opts in.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	loggers []*log.Logger
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

// GetLogger gets a logger with the given prefix. The logger follows the
// output set by SetOutput and SetOutputFile.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new writer. If the new writer is nil, outputs are discarded.
func SetOutput(newout io.Writer) {
	if newout == nil {
		newout = io.Discard
	}
	mu.Lock()
	defer mu.Unlock()
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file, which is opened for appending. If the filename is empty,
// outputs are discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(nil)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	return nil
}
