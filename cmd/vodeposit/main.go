package main

import "github.com/askap/vodeposit/pkg/cli"

func main() {
	cli.Execute()
}
