// main is the entry point for the mfscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/mfscan/cmd"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Deferred work has to run before os.Exit
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	iocache.CloseCaching()
	contract.SyncLogger()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
