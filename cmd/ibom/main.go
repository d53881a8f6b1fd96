package main

import "github.com/OpenTraceLab/ibom/cmd/ibom/cmd"

func main() {
	cmd.Execute()
}
