package main

import "github.com/aalvaropc/statemelt/internal/cli"

func main() {
	cli.Execute()
}
