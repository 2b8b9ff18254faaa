// Command formserve serves the contact form over JSON-RPC or an interactive
// console.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
