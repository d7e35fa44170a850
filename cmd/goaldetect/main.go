package main

import (
	"fmt"
	"os"

	"goal-detector/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
