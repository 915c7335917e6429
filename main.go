package main

import "github.com/klokku/freelancer/cmd"

func main() {
	cmd.Execute()
}
