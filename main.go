// Package main is the entry point for the forkest CLI.
package main

import "gooze.dev/pkg/forkest/cmd"

func main() {
	cmd.Execute()
}
