package main

import "github.com/kamal-hamza/secam/cmd"

func main() {
	cmd.Execute()
}
