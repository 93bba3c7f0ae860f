// Package config loads and validates application configuration from the
// environment and an optional config file. Configuration is injected into
// components at construction; nothing in this codebase reads the process
// environment at request time.
package config
