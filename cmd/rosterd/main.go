package main

import (
	"os"

	"github.com/example/branch-roster/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
