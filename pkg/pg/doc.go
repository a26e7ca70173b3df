// Package pg bootstraps PostgreSQL for the tenancy services.
//
// Connect opens a pgx pool with retries, Migrate applies the goose migrations
// embedded in the binary, and Gorm opens a gorm session over the same pool for
// the scoped entity repositories. The error helpers classify pgx and
// PostgreSQL errors (no rows, unique and foreign key violations) so callers can
// translate them into domain errors without importing pgconn.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, db.Migrations, cfg, log); err != nil {
//		return err
//	}
//	gdb, err := pg.Gorm(pool, cfg)
package pg
