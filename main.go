package main

import (
	"os"

	"go.withmatt.com/mailflow/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
