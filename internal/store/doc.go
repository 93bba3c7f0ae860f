// Package store defines the persistence interfaces and sentinel errors
// shared by all storage backends. Implementations live under
// internal/platform (e.g., internal/platform/postgres).
package store
