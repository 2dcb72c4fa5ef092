package main

import "github.com/alec-rabold/zipclean/cmd"

// VERSION is overridden at build time via -ldflags.
var VERSION = "dev"

func main() {
	cmd.Execute(VERSION)
}
