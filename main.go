package main

import "switchshop/cmd"

func main() {
	cmd.Execute()
}
