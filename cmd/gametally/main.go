package main

import (
	"fmt"
	"os"
)

// Exit codes. A run either produces its artifacts or it does not; every
// failure, whether spec, dataset or rendering, exits with the same code.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}
