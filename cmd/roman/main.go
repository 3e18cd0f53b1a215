package main

import "github.com/aalvaropc/roman/internal/cli"

func main() {
	cli.Execute()
}
