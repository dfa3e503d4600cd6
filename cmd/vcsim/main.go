package main

import (
	"os"

	"vcsim.dev/vcsim/internal/cli"
	"vcsim.dev/vcsim/internal/output"
)

var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		splog := output.NewSplog()
		splog.Error("%v", err)
		splog.Close()
		os.Exit(1)
	}
}
