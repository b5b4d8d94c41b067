package main

import (
	"github.com/joho/godotenv"

	"webrag/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
