package main

import "github.com/labomak/dashboard/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
