package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credential sources, checked in this order.
const (
	EnvAPIKey   = "DEEPSEEK_API_KEY"
	keyFileName = ".deepseek_key"
	dotenvName  = ".env"
)

// ErrMissingAPIKey lists every accepted way to provide the credential.
var ErrMissingAPIKey = errors.New(
	"missing DeepSeek API key: set the " + EnvAPIKey + " environment variable, " +
		"put the key on the first line of a " + keyFileName + " file, " +
		"add " + EnvAPIKey + "=... to " + dotenvName + ", " +
		"or set api_key in the config file")

// ResolveAPIKey locates the API credential: environment variable first, then
// the key file, then the dotenv file, then the config's api_key. The file
// fallbacks are skipped when cfg.KeyFiles is false; missing or unreadable
// files mean "not found", never an error. The resolved key is held in memory
// only and is never written back or logged.
func ResolveAPIKey(cfg *Config) (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}
	if cfg.KeyFiles {
		if key := readKeyFile(keyFileName); key != "" {
			return key, nil
		}
		if key := readDotenv(dotenvName); key != "" {
			return key, nil
		}
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		return key, nil
	}
	return "", ErrMissingAPIKey
}

// readKeyFile takes the first line of a single-line key file.
func readKeyFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n")
	return strings.TrimSpace(line)
}

func readDotenv(path string) string {
	vars, err := godotenv.Read(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(vars[EnvAPIKey])
}
