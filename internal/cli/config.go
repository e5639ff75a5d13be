package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	MemberID  string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BETPOOL_SERVER", "http://localhost:8080"),
		MemberID:  os.Getenv("BETPOOL_MEMBER"),
		Output:    "text",
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
