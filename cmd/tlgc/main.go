// tlgc validates TraceLogging event descriptions and prints the compiled
// provider and event metadata.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
