// Command snapname is the control CLI for the snapnamed daemon.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "snapname: %v\n", err)
		os.Exit(1)
	}
}
