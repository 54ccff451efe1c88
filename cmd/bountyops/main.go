package main

import (
	"os"

	"github.com/bountyops/bountyops/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
