package main

import (
	"os"
	"strconv"
	"time"
)

const envPrefix = "STARFIELD_"

func valueFromEnvString(key, defaultValue string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		return v
	}
	return defaultValue
}

func valueFromEnvInt(key string, defaultValue int) int {
	if str, ok := os.LookupEnv(envPrefix + key); ok {
		if v, err := strconv.Atoi(str); err == nil {
			return v
		}
	}
	return defaultValue
}

func valueFromEnvBool(key string, defaultValue bool) bool {
	if str, ok := os.LookupEnv(envPrefix + key); ok {
		if v, err := strconv.ParseBool(str); err == nil {
			return v
		}
	}
	return defaultValue
}

func valueFromEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if str, ok := os.LookupEnv(envPrefix + key); ok {
		if v, err := time.ParseDuration(str); err == nil {
			return v
		}
	}
	return defaultValue
}
