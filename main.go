package main

import (
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.NewWithOptions(os.Stderr, log.Options{Prefix: "go-dock"}).Error(err)
		os.Exit(1)
	}
}
