package main

import "github.com/drevops/vortex-sub001/cmd"

func main() {
	cmd.Execute()
}
