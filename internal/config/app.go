package config

import "fmt"

// AppConfig — настройки HTTP-сервера и внешних коллабораторов.
// Брокер, Redis и Stripe опциональны: при пустом значении соответствующая
// интеграция отключается, ядро продолжает работать.
type AppConfig struct {
	HTTPAddr string

	JWTSecret    string
	JWTExpireMin int

	AMQPURL    string
	MQExchange string

	RedisAddr string

	StripeSecretKey string
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpireMin:    getEnvInt("JWT_EXPIRE_MIN", 7*24*60),
		AMQPURL:         getEnv("AMQP_URL", ""),
		MQExchange:      getEnv("MQ_EXCHANGE", "serviceconnect.events"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("invalid app config: JWT_SECRET must not be empty")
	}

	return cfg, nil
}
