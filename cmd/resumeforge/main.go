package main

import (
	"os"

	"github.com/dgallion1/resumeforge/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
