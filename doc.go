// Package auth implements request authentication for HTTP services: it
// verifies signed bearer tokens, resolves the authenticated user against
// an authoritative store (with a bounded cache), enforces account-ban and
// ownership policies, and exposes the resolved identity through a
// request-scoped context consumed by downstream authorization logic.
//
// The HTTP pipeline itself lives in middleware/jwtware; this package holds
// the token codec, the user resolver, the ownership guard, and the shared
// error taxonomy they all translate into.
package auth
