package main

import (
	"fmt"
	"os"

	"smartler/internal/importcli"
)

func main() {
	store, err := importcli.NewStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := importcli.NewRootCommand(store).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
