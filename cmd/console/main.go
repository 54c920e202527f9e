package main

import "github.com/schooltrack/go-console-auth/cmd/console/commands"

func main() {
	commands.Execute()
}
