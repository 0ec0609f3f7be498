package main

import (
	"errors"
	"fmt"
	"os"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		ece := classify(err)
		if ece.msg != "" {
			fmt.Fprintln(os.Stderr, ece.msg)
		}
		os.Exit(ece.code)
	}
}

// classify maps an error returned by a command to its exit code. Errors
// without one, such as cobra usage errors, exit with ExitInvalidArgs.
func classify(err error) *exitCodeError {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece
	}
	return &exitCodeError{code: ExitInvalidArgs, msg: err.Error()}
}
