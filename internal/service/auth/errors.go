package auth

import "errors"

// Common authentication service errors.
var (
	// ErrInvalidCredentials is returned for every login failure: unknown
	// identifier, wrong password, or inactive account. The reasons are
	// deliberately not distinguished so callers cannot probe for account
	// existence.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates an access token is malformed, carries a
	// bad signature, or has the wrong type claim.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates an access token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidRefreshToken indicates a refresh token is malformed,
	// tampered with, revoked, of the wrong type, or tied to a user that
	// no longer may authenticate. Like login failures, the reasons are
	// collapsed on purpose.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates a refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType indicates a token was presented in the wrong
	// context, e.g. an access token sent to the refresh endpoint.
	ErrWrongTokenType = errors.New("wrong token type")
)
