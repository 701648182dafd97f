package main

import "debdl/internal/cli"

func main() {
	cli.Execute()
}
