// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes function fields for customizable
// behavior and a map-backed default implementation for simple cases.
package mocks
