package main

import "github.com/matks/traces/cmd"

func main() {
	cmd.Execute()
}
