package main

import (
	"github.com/joho/godotenv"

	"slipgen/internal/app/server"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	server.Run()
}
