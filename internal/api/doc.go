// Package api is the HTTP client for the Mortar service. It reads and writes
// a project's config vars and fetches the authenticated user's git
// organization. Callers pass the already resolved project name; the client
// never inspects the local repository.
package api
