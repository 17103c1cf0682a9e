package main

import (
	"os"

	"github.com/saulo-duarte/pms-lambda/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
