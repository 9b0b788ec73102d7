package main

import (
	"os"

	"cmdpalette/cli"
)

func main() {
	os.Exit(cli.Execute())
}
