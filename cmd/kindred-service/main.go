package main

import (
	"os"

	"github.com/kindredhq/kindred/appservice"
)

func main() {
	if err := appservice.Run(); err != nil {
		os.Exit(1)
	}
}
