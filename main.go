package main

import "github.com/datavista/datavista-cli/cmd"

func main() {
	cmd.Execute()
}
