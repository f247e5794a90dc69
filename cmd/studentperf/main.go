package main

import (
	"github.com/indhiran08-coder/student-performance-ai/internal/cli"
)

var (
	version = "0.1.0"
)

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
