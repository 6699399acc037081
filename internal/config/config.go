// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек консоли витрины
type Config struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	BackendAPI      `yaml:"backend_api"`
	SessionToken    `yaml:"session_token"`
	Rabbit          `yaml:"rabbitmq"`
	CatalogTTL      time.Duration `yaml:"catalog_ttl" env-default:"5m"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis,
// где хранятся principal и токен активных сессий
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// BackendAPI структура для настройки клиента административного бекенда
type BackendAPI struct {
	AddressAPI string        `yaml:"addressapi"`
	TimeoutAPI time.Duration `yaml:"timeoutapi" env-default:"10s"`
}

// SessionToken структура для подписи сессионного токена консоли
type SessionToken struct {
	SecretKey  string        `yaml:"secret_key"`
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"24h"`
}

// Rabbit структура для настройки публикации событий о заказах
type Rabbit struct {
	RabbitURL   string `yaml:"rabbit_url"`
	OrdersQueue string `yaml:"orders_queue" env-default:"orders.committed"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
