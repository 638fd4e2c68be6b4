package main

import "github.com/tessro/reverb/internal/cli"

func main() {
	cli.Execute()
}
