package main

import (
	"log"

	"github.com/vendora/vendora/internal/server"

	// Register migrations so a fresh deployment can self-migrate via CLI.
	_ "github.com/vendora/vendora/database/migrations"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
