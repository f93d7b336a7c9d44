package main

import "github.com/hamzaafridi/ocalcli/internal/cli"

func main() {
	cli.Execute()
}
