package main

import (
	"os"

	"github.com/eventhall/eventhall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
