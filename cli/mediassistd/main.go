package main

import (
	"os"

	servecmder "github.com/mediassistco/mediassist/cmd/mediassist/serve"
)

func main() {
	cmd := servecmder.NewServeCmd()
	cmd.Use = "mediassistd"
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .mediassist/ config directory")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
