package main

import (
	"os"

	"github.com/MartinianoLopez/comparador-clientes/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
