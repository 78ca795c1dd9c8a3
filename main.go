package main

import "github.com/notargets/gosurface/cmd"

func main() {
	cmd.Execute()
}
