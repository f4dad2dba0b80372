package config

import "os"

type Config struct {
	Address       string
	MongoURI      string
	MongoDatabase string
	CassandraHost string
	JWTSecret     string
	JaegerAddress string
}

func GetConfig() Config {
	return Config{
		Address:       getEnv("TASKBOARD_ADDRESS", ":8000"),
		MongoURI:      os.Getenv("MONGO_DB_URI"),
		MongoDatabase: getEnv("MONGO_DB_NAME", "taskboard"),
		CassandraHost: getEnv("CASSANDRA_HOST", "cassandra-db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JaegerAddress: getEnv("JAEGER_ADDRESS", "http://localhost:14268/api/traces"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
