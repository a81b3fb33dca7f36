// Package middleware groups the HTTP middleware of the Fiber application.
//
// # Components
//
//   - auth: checks the X-API-Key header (or a Bearer token) against server.api_key.
//     Paths under a configured skip prefix, such as /swagger, pass through.
//   - rayid: gives every request a ray id, reusing a valid incoming X-Ray-ID,
//     and stores it in the context locals and the response header.
//
// The ray id middleware is registered first so request logs can carry the id.
package middleware
