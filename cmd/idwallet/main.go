package main

import (
	"os"

	"idwallet/cmd/idwallet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
