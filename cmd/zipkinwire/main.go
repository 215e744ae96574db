package main

import (
	"github.com/anirudhraja/zipkinwire/cmd/zipkinwire/cmd"
)

func main() {
	cmd.Execute()
}
