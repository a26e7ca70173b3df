// Package registration implements the tenant lifecycle on top of the store:
// self-registration, admin provisioning, profile updates and soft deletion.
//
// Register checks the form (user fields, password strength, organization
// name, subdomain rules), verifies the email and subdomain are free, hashes
// the password with bcrypt and writes everything in one transaction. The
// result carries the URL of the new tenant's subdomain so the caller can
// redirect there.
//
// Every write that changes a tenant drops its cached lookups through the
// Invalidator given with WithInvalidator.
package registration
