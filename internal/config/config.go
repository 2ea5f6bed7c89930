package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Server   ServerConfig
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type JWTConfig struct {
	Secret string
}

type ServerConfig struct {
	Port string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Info("no .env file loaded")
	}

	return &Config{
		Database: loadDatabase(),
		JWT: JWTConfig{
			Secret: getEnvOrDefault("JWT_SECRET", "default_secret_key"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}
}

func loadDatabase() DatabaseConfig {
	driver := getEnvOrDefault("DB_DRIVER", "sqlite")

	var dsn string
	switch driver {
	case "mysql":
		dsn = buildMySQLDSN()
	default:
		driver = "sqlite"
		dsn = getEnvOrDefault("SQLITE_PATH", "./data/app.db")
	}

	return DatabaseConfig{Driver: driver, DSN: dsn}
}

func buildMySQLDSN() string {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return dsn
	}

	host := getEnvOrDefault("MYSQL_HOST", "localhost")
	port := getEnvOrDefault("MYSQL_PORT", "3306")
	username := os.Getenv("MYSQL_USERNAME")
	password := os.Getenv("MYSQL_PASSWORD")
	database := os.Getenv("MYSQL_DATABASE")
	charset := getEnvOrDefault("MYSQL_CHARSET", "utf8mb4")

	if username == "" || password == "" || database == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		username, password, host, port, database, charset)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
