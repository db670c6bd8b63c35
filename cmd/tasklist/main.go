package main

import (
	"os"

	"tasklist/cmd/tasklist/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr, nil))
}
