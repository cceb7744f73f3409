package main

import "typedterm/internal/cli"

func main() {
	cli.Execute()
}
