package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv treats unset and blank variables alike.
func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func getIntEnv(key string, defaultValue int) int {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getStringEnv returns the raw value, so an explicitly empty variable
// still disables optional subsystems such as REDIS_URL.
func getStringEnv(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func getBoolEnv(key string, defaultValue bool) bool {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getDurationEnv accepts a Go duration ("750ms", "2m") or a bare integer
// counted in unit. defaultValue is also counted in unit.
func getDurationEnv(key string, unit time.Duration, defaultValue int) time.Duration {
	value, ok := lookupEnv(key)
	if !ok {
		return time.Duration(defaultValue) * unit
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * unit
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return time.Duration(defaultValue) * unit
}
