package main

import (
	"log"

	"github.com/m3rciful/taskbot/internal/cmd"
)

func main() {
	if err := cmd.Run(cmd.Options{DefaultConfigPath: "config.yaml"}); err != nil {
		log.Fatalf("taskbot: %v", err)
	}
}
