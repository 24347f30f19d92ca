package main

import "persistence-setup/cmd"

func main() {
	cmd.Execute()
}
