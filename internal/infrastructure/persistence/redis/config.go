package redis

import "time"

// Config holds Redis connection settings for the document store.
type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int

	// TTL expires stored documents; zero keeps them forever.
	TTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}
