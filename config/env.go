package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls variables from a local .env file when one exists. Deployed
// instances set PORT and friends in the environment directly, so a missing
// file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("mailpress: loaded configuration from .env")
	}
}
