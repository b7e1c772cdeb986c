package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Room      string
	Player    string
	Name      string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BHABHI_SERVER", "http://localhost:8080"),
		Room:      os.Getenv("BHABHI_ROOM"),
		Player:    os.Getenv("BHABHI_PLAYER"),
		Name:      os.Getenv("BHABHI_NAME"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
