package config

// FixtureConfig holds configuration for the local fixture server
type FixtureConfig struct {
	Port string
}

// LoadFixtureConfig loads fixture server configuration from environment variables
func LoadFixtureConfig(getenv func(string) string) FixtureConfig {
	port := getenv("FIXTURE_PORT")
	if port == "" {
		port = "5173" // Same port the target application uses
	}

	return FixtureConfig{
		Port: port,
	}
}
