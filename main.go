package main

import "llmgauge/cmd"

func main() {
	cmd.Execute()
}
