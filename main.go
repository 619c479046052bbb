// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/fatih/color"

	"bread/internal/config"
	"bread/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	cfg, err := config.LoadNearest(".")
	if err != nil {
		color.Red("config error: %s", err)
		cfg = config.Default()
	}
	if !cfg.Output.Color {
		color.NoColor = true
	}

	fmt.Printf("Welcome to the Bread REPL, %s! Type :help for commands.\n", currentUser.Username)
	repl.Start(os.Stdin, os.Stdout, cfg)
}
