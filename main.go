package main

import (
	"context"
	"os"

	"github.com/ltth-app/siteops/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
