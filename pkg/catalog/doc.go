// Package catalog loads the tenancy catalog: reserved slugs, slug format,
// tenant types and defaults, and the role hierarchy. A default document is
// embedded in the binary; TENANCY_CATALOG_PATH replaces it with a file.
package catalog
