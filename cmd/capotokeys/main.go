package main

import "capotokeys/cmd/capotokeys/cmd"

func main() {
	cmd.Execute()
}
