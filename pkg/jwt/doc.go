// Package jwt issues and verifies HS256 access tokens whose subject is a
// user id, on top of github.com/golang-jwt/jwt/v5.
//
//	svc, err := jwt.New(cfg.Secret, jwt.WithTTL(cfg.TTL), jwt.WithIssuer("shopadmin"))
//	token, err := svc.Issue(user.ID)
//
//	raw, err := jwt.BearerTokenExtractor(r)
//	userID, err := svc.UserID(raw)
//
// Extractors return ErrMissingToken when a request carries no token, so
// callers can tell anonymous requests from malformed ones. Verification
// failures map to ErrExpiredToken, ErrInvalidSignature, ErrInvalidClaims or
// ErrInvalidToken.
package jwt
