package main

import "github.com/git-pkgs/archversions/internal/cli"

func main() {
	cli.Execute()
}
