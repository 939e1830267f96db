package utils

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DEFAULT_ENV_FILE is read when ENV_FILE is not set
const DEFAULT_ENV_FILE = ".env"

// EnvFiles lists the .env files to load: ENV_FILE if set, otherwise .env
func EnvFiles() []string {
	if file := os.Getenv("ENV_FILE"); file != "" {
		return []string{file}
	}
	return []string{DEFAULT_ENV_FILE}
}

// LoadEnv loads the given .env files into the process environment and returns the
// resulting environment. Variables already set win over file values
func LoadEnv(files ...string) map[string]string {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Printf("[UTILS]: Warning, could not load %s: %v", file, err)
		}
	}

	config := make(map[string]string)
	for _, env := range os.Environ() {
		if key, value, ok := strings.Cut(env, "="); ok && key != "" {
			config[key] = value
		}
	}

	return config
}
