// Package config provides runtime configuration values for the server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the HTTP and database knobs.
type Config struct {
	HTTPAddr        string
	MySQLDSN        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/shop?parseTime=true"),
		MaxOpenConns:    atoienv("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    atoienv("DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: durenvs("DB_CONN_MAX_LIFETIME", 300),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
	}
}
