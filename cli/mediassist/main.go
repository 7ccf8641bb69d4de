package main

import (
	"os"

	mediassistcmder "github.com/mediassistco/mediassist/cmd/mediassist"
)

func main() {
	cmd := mediassistcmder.NewMediassistCmd()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
