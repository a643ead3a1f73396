package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends soportados para los almacenes de registros y de sesiones.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRemote   = "remote"
	StoreFallback = "fallback"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Store   StoreConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// RedisConfig conexión a Redis (solo se usa con SESSION_BACKEND=redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prefijo de las llaves de sesión
}

// StoreConfig selecciona el backend de los catálogos y movimientos.
type StoreConfig struct {
	Backend     string        // memory | postgres | remote | fallback
	APIBaseURL  string        // base del backend REST (remote, fallback)
	APITimeout  time.Duration // timeout por petición al backend REST
	MockLatency time.Duration // latencia simulada del backend en memoria
}

// SessionConfig selecciona dónde se persisten las sesiones.
type SessionConfig struct {
	Backend string // memory | redis
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, STORE_BACKEND, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "smartbodega"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "smartbodega"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "smartbodega"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "SESSION_PREFIX", "smartbodega:session:"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(getString(v, "STORE_BACKEND", StoreMemory)),
			APIBaseURL:  strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:3000/api"), "/"),
			APITimeout:  time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 5)) * time.Second,
			MockLatency: time.Duration(getInt(v, "MOCK_LATENCY_MS", 0)) * time.Millisecond,
		},
		Session: SessionConfig{
			Backend: strings.ToLower(getString(v, "SESSION_BACKEND", SessionMemory)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones que impedirían arrancar el servicio.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StorePostgres, StoreRemote, StoreFallback:
	default:
		return fmt.Errorf("config: STORE_BACKEND desconocido %q", c.Store.Backend)
	}
	switch c.Session.Backend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("config: SESSION_BACKEND desconocido %q", c.Session.Backend)
	}
	if c.JWT.Secret == "" {
		if c.App.Env != "development" {
			return fmt.Errorf("config: JWT_SECRET es obligatorio en %s", c.App.Env)
		}
		c.JWT.Secret = "smartbodega-dev-secret"
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return nil
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
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
