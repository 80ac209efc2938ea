package main

import (
	"log"

	"github.com/MrSnakeDoc/linkhub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("❌ linkhub: %v", err)
	}
}
