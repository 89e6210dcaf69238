package main

import "github.com/wingman-desktop/wingman/cmd"

func main() {
	cmd.Execute()
}
