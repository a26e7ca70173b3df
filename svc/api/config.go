package api

import (
	"time"

	"github.com/dmitrymomot/tenancy/pkg/ratelimiter"
)

// Config holds HTTP API settings.
type Config struct {
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"shopadmin"`

	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// CookieName carries the access token across tenant subdomains.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"access_token"`

	TrustedIPHeaders []string `env:"HTTP_TRUSTED_IP_HEADERS" envSeparator:","`

	LoginRateLimit    int           `env:"RATE_LOGIN_LIMIT" envDefault:"5"`
	RegisterRateLimit int           `env:"RATE_REGISTER_LIMIT" envDefault:"2"`
	RateWindow        time.Duration `env:"RATE_WINDOW" envDefault:"1m"`

	HealthTimeout time.Duration `env:"HEALTH_TIMEOUT" envDefault:"3s"`
}

func (c Config) LoginRate() ratelimiter.Config {
	return ratelimiter.Config{Limit: c.LoginRateLimit, Window: c.RateWindow}
}

func (c Config) RegisterRate() ratelimiter.Config {
	return ratelimiter.Config{Limit: c.RegisterRateLimit, Window: c.RateWindow}
}

// SecureCookies reports whether auth cookies need HTTPS.
func (c Config) SecureCookies() bool {
	return c.AppEnv == "production" || c.AppEnv == "staging"
}
