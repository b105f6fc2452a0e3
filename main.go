package main

import "loot-splitter/cmd"

func main() {
	cmd.Execute()
}
