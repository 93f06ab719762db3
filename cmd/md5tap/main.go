package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// A canceled context is the normal Ctrl-C exit path for watch
		// and long streams; it has already been handled.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "md5tap:", err)
		}
		os.Exit(1)
	}
}
