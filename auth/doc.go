// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token generation.

# Password Hashing

Passwords are hashed with bcrypt (cost 12):

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

CheckPassword returns ErrInvalidCredentials on any mismatch, including
malformed stored hashes, so callers can surface a single 401 condition
without leaking which part failed.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded without padding and returned to the
client at login.
*/
package auth
