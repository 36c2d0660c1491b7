package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string        // Host IP for the server
	RESTPort        int           // Port for the REST API
	GinMode         string        // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel        string        // Minimum logrus level
	MazeSize        int           // Default side length of a session's maze
	AgentCount      int           // Default number of sentinels per session
	WanderInterval  time.Duration // Time between sentinel wander steps
	ChargeDuration  time.Duration // Time a sentinel charges before firing
	TickInterval    time.Duration // How often a session advances its sentinels
	MaxHealth       int           // Avatar health at the start of a run
	SessionDuration time.Duration // Lifetime of a session before it is stopped
	RedisAddr       string        // Redis address for the scoreboard; empty keeps it in memory
	RedisPassword   string        // Password for Redis
	ScoreboardKey   string        // Sorted set key holding the scoreboard
	ScoreboardSize  int           // Number of runs the scoreboard keeps
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		MazeSize:        getEnvAsIntWithDefault("MAZE_SIZE", 10),
		AgentCount:      getEnvAsIntWithDefault("AGENT_COUNT", 4),
		WanderInterval:  getEnvAsDurationWithDefault("WANDER_INTERVAL", time.Second),
		ChargeDuration:  getEnvAsDurationWithDefault("CHARGE_DURATION", 2*time.Second),
		TickInterval:    getEnvAsDurationWithDefault("TICK_INTERVAL", 100*time.Millisecond),
		MaxHealth:       getEnvAsIntWithDefault("MAX_HEALTH", 5),
		SessionDuration: getEnvAsDurationWithDefault("SESSION_DURATION", 10*time.Minute),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		ScoreboardKey:   getEnvWithDefault("SCOREBOARD_KEY", "vinom:scoreboard"),
		ScoreboardSize:  getEnvAsIntWithDefault("SCOREBOARD_SIZE", 100),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer or logs a fatal error if it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsDurationWithDefault retrieves an environment variable as a duration such as "250ms" or logs a fatal error if it cannot be parsed.
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a duration: %v", key, err)
	}
	return value
}
