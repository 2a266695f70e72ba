package main

import (
	"os"

	"github.com/dafibh/burnrate/burnrate-backend/internal/cli"
	"github.com/pterm/pterm"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
