package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSNEscapesCredentials(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     "5432",
		User:     "rail",
		Password: "p@ss/word",
		DBName:   "railway_reservation",
	}

	assert.Equal(t, "postgres://rail:p%40ss%2Fword@db:5432/railway_reservation?sslmode=disable", cfg.DSN())
}
