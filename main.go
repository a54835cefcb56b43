package main

import "multitimer/cmd"

func main() {
	cmd.Execute()
}
