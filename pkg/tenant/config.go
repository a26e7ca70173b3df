package tenant

import (
	"strings"
	"time"
)

// DefaultAuthBypassPaths are reachable on the base domain without a tenant or a session.
var DefaultAuthBypassPaths = []string{
	"/tenant/login",
	"/tenant/register",
	"/tenant/password",
	"/tenant/email",
}

// DefaultSuperAdminRole bypasses tenant membership checks.
const DefaultSuperAdminRole = "super_admin"

// Config holds tenant resolution settings.
type Config struct {
	BaseDomain      string        `env:"TENANCY_BASE_DOMAIN,required"`
	AuthBypassPaths []string      `env:"TENANCY_AUTH_BYPASS_PATHS" envSeparator:"," envDefault:"/tenant/login,/tenant/register,/tenant/password,/tenant/email"`
	SuperAdminRole  string        `env:"TENANCY_SUPER_ADMIN_ROLE" envDefault:"super_admin"`
	CacheTTL        time.Duration `env:"TENANCY_CACHE_TTL" envDefault:"5m"`
	CacheSize       int           `env:"TENANCY_CACHE_SIZE" envDefault:"1000"`
	RedisCache      bool          `env:"TENANCY_REDIS_CACHE" envDefault:"false"`
}

// NewConfig returns a Config with defaults for baseDomain.
func NewConfig(baseDomain string) Config {
	return Config{
		BaseDomain:      baseDomain,
		AuthBypassPaths: DefaultAuthBypassPaths,
		SuperAdminRole:  DefaultSuperAdminRole,
		CacheTTL:        5 * time.Minute,
		CacheSize:       1000,
	}
}

// IsAuthBypassPath reports whether path starts with one of the configured auth-bypass prefixes.
func (c Config) IsAuthBypassPath(path string) bool {
	for _, prefix := range c.AuthBypassPaths {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (c Config) superAdminRole() string {
	if c.SuperAdminRole == "" {
		return DefaultSuperAdminRole
	}
	return c.SuperAdminRole
}
