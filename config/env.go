package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvDebug    = "HONLY_DEBUG"
	EnvAudio    = "HONLY_AUDIO"
	EnvVolume   = "HONLY_VOLUME"
	EnvTickRate = "HONLY_TICK_RATE"
	EnvLevel    = "HONLY_LEVEL"
)

// Env holds runtime switches
type Env struct {
	Debug     bool
	Audio     bool
	Volume    float64
	TickRate  int    // Simulation ticks per second
	LevelPath string // Empty uses the built-in level
}

// LoadEnv reads an optional .env file, then HONLY_* variables
// Existing process variables take precedence over .env entries
func LoadEnv(files ...string) Env {
	_ = godotenv.Load(files...)

	return Env{
		Debug:     getEnvBool(EnvDebug, false),
		Audio:     getEnvBool(EnvAudio, true),
		Volume:    getEnvFloat(EnvVolume, 1),
		TickRate:  getEnvInt(EnvTickRate, 60),
		LevelPath: getEnv(EnvLevel, ""),
	}
}

// getEnv returns the variable or defaultValue when unset
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	switch value {
	case "":
		return defaultValue
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f < 0 {
		return defaultValue
	}
	return f
}
