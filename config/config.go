package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reads a variable from .env (falls back to the process env).
func Config(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file found, using process env")
	}
	return os.Getenv(key)
}
