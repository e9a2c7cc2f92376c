package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/avoronov/blocksolve/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var fbErr *cli.FailedBlocksError
		if errors.As(err, &fbErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
