package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración del token de sesión.
// El token lo emite el servicio de cuentas (colaborador externo); aquí solo se valida.
type JWTConfig struct {
	Secret string
	Issuer string
}

// UpstreamConfig configuración del backend de farmacia que provee órdenes y productos.
type UpstreamConfig struct {
	BaseURL        string // ej. http://localhost:8000
	TimeoutSeconds int
}

// Timeout devuelve el timeout de red para las llamadas al backend.
func (c UpstreamConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig configuración de Redis para el cache de snapshots y reportes.
// Si Addr está vacío el servicio opera sin cache (implementación Noop).
type CacheConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// TTL devuelve la vigencia de las entradas cacheadas.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, UPSTREAM_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "pharmatrack-reports"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "pharmatrack"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getString(v, "UPSTREAM_BASE_URL", "http://localhost:8000"),
			TimeoutSeconds: getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 10),
		},
		Cache: CacheConfig{
			Addr:       getString(v, "CACHE_ADDR", ""),
			Password:   getString(v, "CACHE_PASSWORD", ""),
			DB:         getInt(v, "CACHE_DB", 0),
			TTLSeconds: getInt(v, "CACHE_TTL_SECONDS", 60),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
