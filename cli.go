//go:build cli
// +build cli

package main

import (
	"atelier.GO/cmd"
	"atelier.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
