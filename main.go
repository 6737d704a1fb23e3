package main

import "github.com/featlab/featlab/cmd"

func main() {
	cmd.Execute()
}
