// main is the entrypoint for the rhythmscan CLI.
package main

import (
	"github.com/pulseworks/rhythmscan/cmd"
	"github.com/pulseworks/rhythmscan/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
