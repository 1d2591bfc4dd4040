// Package cookie provides a cookie manager with plain, HMAC-signed, and
// AES-GCM encrypted variants plus one-shot flash messages.
package cookie
