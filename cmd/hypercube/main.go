package main

import "github.com/hupe1980/hypercube/cmd/hypercube/commands"

func main() {
	commands.Execute()
}
