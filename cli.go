//go:build cli
// +build cli

package main

import (
	_ "mailpress/custom"

	"mailpress/cmd"
	"mailpress/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
