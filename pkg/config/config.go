package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	FirebaseCredentialsPath string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "pawhaven"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
