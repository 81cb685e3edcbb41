package main

import "funkit/cmd/funkit-cli/cmd"

func main() {
	cmd.Execute()
}
