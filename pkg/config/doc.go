// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv (optional .env files) with
// github.com/caarlos0/env/v11 (struct tags). Every configuration type is
// parsed once per process and served from a cache afterwards, so packages can
// call Load for the same type without coordinating:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Nested structs are parsed recursively, which lets an application compose
// its configuration from the Config types of the packages it uses. Tests that
// change the environment between loads call Reset.
package config
