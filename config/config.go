package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV       string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	// JWT Configuration
	JWT_SECRET string
	// Users allowed to request tokens, "name:bcrypt-hash:scope1|scope2" comma-separated
	AUTH_USERS string
	// Redis Configuration
	REDIS_URL string
	// Audit log retention in days (pruned by the daily cron job)
	AUDIT_RETENTION_DAYS int
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	retention, err := strconv.Atoi(os.Getenv("AUDIT_RETENTION_DAYS"))
	if err != nil || retention <= 0 {
		retention = 90
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		PORT:         port,
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		AUTH_USERS: os.Getenv("AUTH_USERS"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Audit
		AUDIT_RETENTION_DAYS: retention,
	}

	return envVariables, nil
}

// AuthUser is a principal allowed to request tokens, together with the
// authorities granted to it. Identity itself lives outside this service;
// this is only the adapter-side representation of what the environment
// provides.
type AuthUser struct {
	Name         string
	PasswordHash string
	Authorities  []string
}

// ParseAuthUsers parses the AUTH_USERS environment value. Format, one user
// per comma-separated entry:
//
//	name:bcrypt-hash:scope1|scope2
//
// The authorities part may be empty. Bcrypt hashes contain no colons, so a
// plain three-way split is safe.
func ParseAuthUsers(raw string) ([]AuthUser, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var users []AuthUser
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid AUTH_USERS entry %q", entry)
		}

		var authorities []string
		for _, a := range strings.Split(parts[2], "|") {
			if a = strings.TrimSpace(a); a != "" {
				authorities = append(authorities, a)
			}
		}

		users = append(users, AuthUser{
			Name:         parts[0],
			PasswordHash: parts[1],
			Authorities:  authorities,
		})
	}

	return users, nil
}
