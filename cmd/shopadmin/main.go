// Command shopadmin serves the multi-tenant shop administration API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenancy/internal/db"
	"github.com/dmitrymomot/tenancy/pkg/catalog"
	"github.com/dmitrymomot/tenancy/pkg/clientip"
	"github.com/dmitrymomot/tenancy/pkg/config"
	"github.com/dmitrymomot/tenancy/pkg/httpserver"
	"github.com/dmitrymomot/tenancy/pkg/jwt"
	"github.com/dmitrymomot/tenancy/pkg/logger"
	"github.com/dmitrymomot/tenancy/pkg/pg"
	"github.com/dmitrymomot/tenancy/pkg/ratelimiter"
	"github.com/dmitrymomot/tenancy/pkg/rbac"
	"github.com/dmitrymomot/tenancy/pkg/redis"
	"github.com/dmitrymomot/tenancy/pkg/requestid"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/svc/api"
	"github.com/dmitrymomot/tenancy/svc/registration"
	"github.com/dmitrymomot/tenancy/svc/shop"
	"github.com/dmitrymomot/tenancy/svc/store"
)

const serviceName = "shopadmin"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("shopadmin stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	apiCfg, err := config.Load[api.Config]()
	if err != nil {
		return err
	}
	tenantCfg, err := config.Load[tenant.Config]()
	if err != nil {
		return err
	}
	pgCfg, err := config.Load[pg.Config]()
	if err != nil {
		return err
	}
	redisCfg, err := config.Load[redis.Config]()
	if err != nil {
		return err
	}
	httpCfg, err := config.Load[httpserver.Config]()
	if err != nil {
		return err
	}
	catalogCfg, err := config.Load[catalog.Config]()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(apiCfg.AppEnv, serviceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor,
			clientip.LoggerExtractor,
			tenant.LoggerExtractor(),
			tenant.UserLoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	cat, err := catalog.Load(catalogCfg)
	if err != nil {
		return err
	}
	authz, err := rbac.NewAuthorizer(ctx, cat.RoleSource())
	if err != nil {
		return err
	}
	gate := rbac.NewGate(authz,
		rbac.WithSuperAdminRole(cat.SuperAdminRole),
		rbac.WithGateLogger(log.With(logger.Component("gate"))),
	)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, db.Migrations, pgCfg, log.With(logger.Component("migrate"))); err != nil {
		return err
	}
	gormDB, err := pg.Gorm(pool, pgCfg)
	if err != nil {
		return err
	}

	health := map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)}

	var rdb *goredis.Client
	if tenantCfg.RedisCache {
		rdb, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn("redis close failed", logger.Error(err))
			}
		}()
		health["redis"] = redis.Healthcheck(rdb)
	}

	st := store.New(pool, store.WithSlugRules(cat.SlugRules()), store.WithLogger(log.With(logger.Component("store"))))

	var lookupCache tenant.Cache = tenant.NewMemoryCache(tenantCfg.CacheSize, tenantCfg.CacheTTL)
	if rdb != nil {
		lookupCache = tenant.NewRedisCache(rdb, redisCfg.KeyPrefix, tenantCfg.CacheTTL)
	}
	cached := tenant.NewCachedStore(st, lookupCache, tenant.WithCacheLogger(log.With(logger.Component("tenant_cache"))))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := tenant.NewPrometheusObserver(registry)
	if err != nil {
		return err
	}

	tenantCfg.SuperAdminRole = cat.SuperAdminRole
	resolver := tenant.NewResolver(cached, tenantCfg,
		tenant.WithLogger(log.With(logger.Component("tenant_resolver"))),
		tenant.WithSlugRules(cat.SlugRules()),
		tenant.WithObserver(observer),
	)

	registrar := registration.New(st, cat, tenantCfg.BaseDomain,
		registration.WithLogger(log.With(logger.Component("registration"))),
		registration.WithInvalidator(cached),
	)

	tokens, err := jwt.New(apiCfg.JWTSecret, jwt.WithTTL(apiCfg.JWTTTL), jwt.WithIssuer(apiCfg.JWTIssuer))
	if err != nil {
		return err
	}

	var limits ratelimiter.Store
	if rdb != nil {
		limits = ratelimiter.NewRedisStore(rdb, redisCfg.KeyPrefix+"ratelimit:")
	} else {
		ms := ratelimiter.NewMemoryStore()
		defer ms.Close()
		limits = ms
	}
	loginLimiter, err := ratelimiter.New(limits, "login", apiCfg.LoginRate())
	if err != nil {
		return err
	}
	registerLimiter, err := ratelimiter.New(limits, "register", apiCfg.RegisterRate())
	if err != nil {
		return err
	}

	router := api.NewRouter(apiCfg, api.Deps{
		Resolver:        resolver,
		Accounts:        st,
		Lifecycle:       registrar,
		Shop:            shop.New(gormDB),
		Gate:            gate,
		Catalog:         cat,
		Tokens:          tokens,
		LoginLimiter:    loginLimiter,
		RegisterLimiter: registerLimiter,
		Health:          health,
		Metrics:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:          log.With(logger.Component("http")),
	})

	return httpserver.New(httpCfg, httpserver.WithLogger(log)).Run(ctx, router)
}
