package main

import (
	"github.com/oshokin/doorlink-analyzer/cmd/doorlink/cmd"
)

func main() {
	cmd.Execute()
}
