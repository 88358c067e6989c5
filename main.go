package main

import (
	"github.com/speakeasy-api/recentfile/cmd"
)

var version = "0.0.1"

func main() {
	cmd.Execute(version)
}
