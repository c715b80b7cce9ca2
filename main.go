package main

import "docker-up/cmd"

func main() {
	cmd.Execute()
}
