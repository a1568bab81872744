package main

import (
	"os"

	"github.com/NafisRayan/pdfform/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
