package main

import "github.com/information-sharing-networks/pid-validate/internal/cli"

func main() {
	cli.Execute()
}
