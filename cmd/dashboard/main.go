package main

import "github.com/rustyeddy/dashboard/internal/cli"

func main() {
	cli.Execute()
}
