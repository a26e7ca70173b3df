// Package config maps environment variables onto typed config structs using
// caarlos0/env tags, loading a .env file first when one is present.
package config
