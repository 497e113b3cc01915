package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SHOPSTREAM_APP_ENV"
	EnvDBDSN  = "SHOPSTREAM_DB_DSN"
	EnvDBHost = "SHOPSTREAM_DB_HOST"
	EnvDBUser = "SHOPSTREAM_DB_USER"
	EnvDBName = "SHOPSTREAM_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	SysConfig    SysConfigConfig
	SalesChannel SalesChannelConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPSTREAM_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPSTREAM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPSTREAM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPSTREAM_LOG_WARN_STACK" default:"false"`

	CORSAllowedOrigins []string `envconfig:"SHOPSTREAM_CORS_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPSTREAM_DB_DSN"`
	Driver string `envconfig:"SHOPSTREAM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPSTREAM_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPSTREAM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPSTREAM_DB_USER"`
	LegacyPassword string `envconfig:"SHOPSTREAM_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPSTREAM_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPSTREAM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPSTREAM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPSTREAM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPSTREAM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPSTREAM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPSTREAM_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOPSTREAM_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPSTREAM_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPSTREAM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPSTREAM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPSTREAM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPSTREAM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPSTREAM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPSTREAM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SHOPSTREAM_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SHOPSTREAM_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SHOPSTREAM_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SHOPSTREAM_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPSTREAM_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPSTREAM_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPSTREAM_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPSTREAM_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPSTREAM_ARGON_KEY_LEN" default:"32"`
}

type SysConfigConfig struct {
	CacheTTL time.Duration `envconfig:"SHOPSTREAM_SYSCONFIG_CACHE_TTL" default:"5m"`
}

type SalesChannelConfig struct {
	CacheTTL time.Duration `envconfig:"SHOPSTREAM_SALES_CHANNEL_CACHE_TTL" default:"10m"`
}

type RateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SHOPSTREAM_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"SHOPSTREAM_LOGIN_RATE_LIMIT_IP" default:"20"`
	LoginEmailLimit int           `envconfig:"SHOPSTREAM_LOGIN_RATE_LIMIT_EMAIL" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPSTREAM_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   "/" + db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
