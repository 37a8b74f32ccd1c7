// Package store defines the persistence interfaces consumed by the services
// and the error taxonomy shared by all store implementations.
package store
