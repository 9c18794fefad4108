package main

import (
	"fmt"
	"os"

	"github.com/anvdev/cosmic-wavs-sub000/cmd/wavs/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
