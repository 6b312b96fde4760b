package main

import "github.com/motormint/motormint/cmd"

func main() {
	cmd.Execute()
}
