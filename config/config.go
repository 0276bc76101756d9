package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config reads a value from the environment, loading .env once if present.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Print("")
	}
	return os.Getenv(key)
}
