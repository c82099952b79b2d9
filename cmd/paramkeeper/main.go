package main

import (
	"os"

	"github.com/solatis/paramkeeper/cmd/paramkeeper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
