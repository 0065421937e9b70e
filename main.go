package main

import "github.com/buildstack/kiln/cmd"

func main() {
	cmd.Execute()
}
