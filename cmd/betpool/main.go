package main

import (
	"github.com/jcallaghan/betpool/internal/cli"
)

func main() {
	cli.Execute()
}
