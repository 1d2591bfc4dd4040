// Package auth implements cookie-based OAuth sign-in for loom
// applications. Flow is a loom.Handler mounting /auth/{provider},
// /auth/{provider}/callback, and /auth/logout; verified profiles are
// upserted through a UserStore and the session is a signed JWT cookie.
package auth
