package main

import (
	"os"

	"github.com/dshills/facet/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
