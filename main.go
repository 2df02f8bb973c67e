package main

import (
	"parley/internal/cmd"
	"parley/internal/log"
)

func main() {
	defer log.RecoverPanic("main", nil)
	cmd.Execute()
}
