package main

import "poelauncher/cmd"

func main() {
	cmd.Execute()
}
