// main is the entry point for the pkgpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/pkgpulse/pkgpulse/cmd"
	"github.com/pkgpulse/pkgpulse/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
