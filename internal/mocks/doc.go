// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one of the application's interfaces with function
// fields for per-test customization and a simple map-backed default, so
// test files share one implementation instead of redefining inline mocks.
package mocks
