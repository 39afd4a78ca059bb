package main

import "github.com/bryanchriswhite/snapsource/cmd/snapsource/commands"

func main() {
	commands.Execute()
}
