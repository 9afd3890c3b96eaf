// Package config manages user-level settings stored at ~/.mortar/config.yaml.
// Values can be overridden with MORTAR_* environment variables, and a .env
// file in the working directory is loaded first for local development.
package config
