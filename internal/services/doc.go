// Package services implements the salon backend [Client] and the cached domain facades built on it.
//
// # Client
//
// [Client] sends JSON requests for a [models.Session]. The bearer token is attached by an
// [oauth2.Transport] and every request is traced through otelhttp. Locale and currency hints
// travel as Accept-Language and X-Currency headers.
//
// # Facades
//
// [Catalog], [Stylists], [Venues], [Appointments], [Blocks] and [Fichas] each own their caches.
// Reads within the freshness window never touch the network. A failed refetch serves the stale
// value; the error reaches the caller only when nothing is cached. Creates invalidate exactly the
// list key they affect and never insert into the cache.
//
// [Suite] wires every facade for one session and clears them all on [Suite.Reset].
//
// # Error Handling
//
// Non-2xx responses become [*APIError], which matches:
//   - [shared.ErrAPIRequest] : any backend error
//   - [shared.ErrNotFound] : 404
//   - [shared.ErrNotAuthenticated] : 401
//   - [shared.ErrServiceUnavailable] : 503
//
// Lookups that scan a cached list return [shared.ErrStylistNotFound] or [shared.ErrVenueNotFound].
package services
