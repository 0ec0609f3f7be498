package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataFile = "ADMISI_DATA_FILE"
	EnvAddr     = "ADMISI_ADDR"
)

// EnvFile is the dotenv file read from the working directory.
const EnvFile = ".env"

// LoadDotEnv copies KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// FromEnv returns a Config holding only the environment overrides.
func FromEnv() Config {
	return Config{
		DataFile: os.Getenv(EnvDataFile),
		Server:   ServerConfig{Addr: os.Getenv(EnvAddr)},
	}
}
