// Package service contains the application services that orchestrate the
// domain entities and stores: authentication, user management, the language
// catalog, and the user-language rules.
package service
