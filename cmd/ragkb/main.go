package main

import "github.com/karimelsayed/ragkb/internal/adapters/cli"

func main() {
	cli.Execute()
}
