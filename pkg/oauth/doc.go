// Package oauth wraps golang.org/x/oauth2 with a small provider abstraction
// for the authorization-code flow.
//
// Providers expose three operations the auth flow needs: building the
// authorization URL, exchanging the code for tokens, and fetching a
// normalized user profile. Google and GitHub ship in the box; anything else
// plugs in behind the Provider interface.
package oauth
