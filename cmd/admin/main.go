package main

import (
	"os"

	"github.com/ignatzorin/servantin-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
