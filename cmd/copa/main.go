package main

import (
	"os"

	"github.com/cherdeman/COPA-Project/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
