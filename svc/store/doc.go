// Package store implements tenant resolution storage and tenant
// administration on PostgreSQL through pgx.
//
// Lookups exclude soft-deleted tenants. Slugs are re-validated before every
// insert, and unique violations on the slug and email constraints surface as
// ErrSlugTaken and ErrEmailTaken. Register is a single transaction.
package store
