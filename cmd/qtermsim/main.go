// Command qtermsim simulates small quantum registers: it prints gate
// matrices, runs OpenQASM programs and hosts an interactive terminal UI.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
