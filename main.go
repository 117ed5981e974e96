package main

import "github.com/bobimat/workshop-tasks/cmd"

func main() {
	cmd.Execute()
}
