package main

import "github.com/pstuifzand/rayday/internal/cli"

func main() {
	cli.Execute()
}
