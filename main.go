package main

import (
	"MoodSync/cmd"
)

func main() {
	cmd.Execute()
}
