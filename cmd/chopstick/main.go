package main

import "chopstick/cmd/chopstick/cmd"

func main() {
	cmd.Execute()
}
