// Package application wires the loaded discovery document, HTTP handlers,
// router middleware and the HTTP server together, keeping the main package
// focused on CLI parsing and orchestration.
package application
