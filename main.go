package main

import (
	"os"

	"github.com/suborbital/necrosis/util"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		util.LogFail(err.Error())
		os.Exit(1)
	}
}
