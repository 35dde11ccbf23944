// Package resource implements the uniform CRUD surface served by the API.
//
// A Handler is one generic type configured by a Definition: the capability
// set decides which operations exist and the Retrieval strategy decides how
// a single object is resolved (a direct lookup, a scan of the list result,
// or a synthetic record). The same Handler therefore serves database-backed
// kinds and live provider views without the router or the caller knowing
// which one it is talking to.
//
// Endpoints are the plain, single-GET counterpart. Singletons are Endpoints
// whose response is the serialized synthetic record of a Handler.
package resource
