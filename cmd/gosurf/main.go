package main

import "github.com/philipparndt/gosurf/cmd"

func main() {
	cmd.Execute()
}
