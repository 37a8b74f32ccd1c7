// Package api contains the HTTP handlers, request/response models, and
// error mapping for the REST surface. Handlers validate and decode
// requests, delegate to the services, and translate service errors into
// sanitized responses.
package api
