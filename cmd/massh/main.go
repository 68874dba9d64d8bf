package main

import (
	"github.com/robotalks/massenger/pkg/cli/sh"
	"github.com/robotalks/massenger/pkg/env"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupLinkFlags()
}

func main() {
	sh.Main()
}
