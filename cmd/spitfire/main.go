// Command spitfire inspects, converts and exports tabulated chemistry
// library files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spitfire:", err)
		os.Exit(1)
	}
}
