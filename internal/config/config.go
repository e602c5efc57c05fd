package config

import (
	"os"
	"time"
)

type Config struct {
	ListenAddr      string
	GatewayBaseURL  string
	AWSRegion       string
	S3Bucket        string
	S3Endpoint      string
	CDNDomain       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		GatewayBaseURL:  getenv("GATEWAY_BASE_URL", "http://localhost:9000"),
		AWSRegion:       getenv("AWS_REGION", "us-east-1"),
		S3Bucket:        getenv("S3_BUCKET_NAME", ""),
		S3Endpoint:      getenv("S3_ENDPOINT", ""),
		CDNDomain:       getenv("CDN_DOMAIN", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
