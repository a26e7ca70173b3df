// Package cookie writes and clears HTTP cookies with shared default attributes.
//
// A Manager configured with the application's base domain issues cookies that
// every tenant subdomain receives, which is how one sign-in carries across
// "acme.example.com" and "globex.example.com":
//
//	cookies := cookie.New(cookie.WithDomain("example.com"), cookie.WithSecure(true))
//	_ = cookies.Set(w, "access_token", token, expiresAt)
//	cookies.Delete(w, "access_token")
//
// Defaults are Path "/", HttpOnly and SameSite=Lax. Per-call options override
// them without changing the Manager.
package cookie
