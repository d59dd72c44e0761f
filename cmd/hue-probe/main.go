package main

import (
	"os"

	"github.com/gethue/hue-probe/internal/cli"
	"github.com/gethue/hue-probe/internal/util"
)

func main() {
	if err := cli.Execute(); err != nil {
		util.Fail("%v", err)
		os.Exit(1)
	}
}
