// Package middleware holds the Fiber middleware the serve mode installs.
//
// # Components
//
//   - Auth: API key validation guarding the validation endpoints. Requests
//     without the configured key are rejected before any handler runs.
//   - RayID: assigns every request a unique ray ID, stored in the request
//     context and echoed in a response header so a failed validation call
//     can be matched to its log lines.
//
// Both are registered globally in the server setup; RayID must come first
// so the request logger and handlers see the ID.
package middleware
