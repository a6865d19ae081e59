// Package main provides the entry point for the rpgbot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/pikachuaaaa/RPGBot/cmd/rpgbot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
