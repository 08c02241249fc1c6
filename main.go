package main

import "proptech-analytics/commands"

func main() {
	commands.Execute()
}
