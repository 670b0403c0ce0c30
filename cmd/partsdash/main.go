package main

import (
	"os"

	"github.com/simaogato/partsdash-backend/cmd/partsdash/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
