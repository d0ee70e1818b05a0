package config

import (
	"os"
	"strconv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Lock     LockConfig
	Session  SessionConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LockConfig 座位鎖設定。DefaultTTLSeconds 是未指定 duration 時的鎖存活秒數。
type LockConfig struct {
	DefaultTTLSeconds int
}

// SessionConfig 的 TransportKey 是 AES-256 金鑰（64 字元 hex），
// 用來加密 session token 供傳輸。
type SessionConfig struct {
	TransportKey string
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Lock:     GetLockConfig(),
		Session:  GetSessionConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Lock:     LockConfig{DefaultTTLSeconds: 600},
		Session: SessionConfig{
			TransportKey: "5a8f0fc22cd1b84d3a2b6a3c9d7e1f405a8f0fc22cd1b84d3a2b6a3c9d7e1f40",
		},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetLockConfig() LockConfig {
	ttl, err := strconv.Atoi(getEnv("LOCK_DEFAULT_TTL", "600"))
	if err != nil {
		panic(err)
	}

	return LockConfig{DefaultTTLSeconds: ttl}
}

func GetSessionConfig() SessionConfig {
	// 預設金鑰僅供本地開發；部署時必須覆寫 SESSION_TRANSPORT_KEY
	return SessionConfig{
		TransportKey: getEnv("SESSION_TRANSPORT_KEY", "5a8f0fc22cd1b84d3a2b6a3c9d7e1f405a8f0fc22cd1b84d3a2b6a3c9d7e1f40"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
