package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JwtSecret    string
	JwtExpiresIn int
	Issuer       string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	ServerPort  string
	CorsOrigins string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	SeedFile string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "change-this-in-prod")
	JwtExpiresIn, _ = strconv.Atoi(getEnv("JWT_EXPIRES_IN", "3600"))
	Issuer = getEnv("JWT_ISSUER", "serviceapp")

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "serviceapp")

	ServerPort = getEnv("SERVER_PORT", "8080")
	CorsOrigins = getEnv("CORS_ORIGINS", "*")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "serviceapp-uploads")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	SeedFile = getEnv("SEED_FILE", "configs/seed.yaml")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
