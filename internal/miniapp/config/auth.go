package config

// AuthConfig содержит настройки определения владельца запроса.
type AuthConfig struct {
	// JWTSecret - ключ HS256. Пустое значение отключает разбор JWT,
	// остаются только токены с закодированным именем пользователя.
	JWTSecret string `yaml:"jwt_secret" env:"MINIAPP_JWT_SECRET" env-default:""`
}
