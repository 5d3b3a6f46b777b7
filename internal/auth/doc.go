// Package auth provides authentication and authorisation for taskdeck.
//
// It implements:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - An in-memory session registry mapping opaque bearer tokens to
//     account identity and role for the process lifetime
//   - An authorisation gate that re-reads the caller's account fresh from
//     the credential store on every request and enforces role requirements
//   - Idempotent seeding of the configured administrator account
//
// Sessions deliberately have no expiry, refresh, or revocation: a token is
// valid until the process exits. The gate, not the session, is the source of
// truth for identity: a session whose account record has vanished is
// rejected as invalid.
package auth
