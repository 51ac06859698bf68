package auth

import "errors"

var (
	// ErrMissingCode: the redirect callback carried no authorization code.
	ErrMissingCode = errors.New("authorization code missing from callback")

	// ErrMalformedToken: the access token's payload segment could not be
	// decoded or carries no subject claim. The session itself stays valid;
	// only the display-info lookup is impossible.
	ErrMalformedToken = errors.New("malformed access token")

	// ErrExchangeFailed: the backend rejected the code exchange or was
	// unreachable during it.
	ErrExchangeFailed = errors.New("code exchange failed")

	// ErrProfileFetchFailed: the user profile could not be fetched. Does not
	// invalidate the session.
	ErrProfileFetchFailed = errors.New("profile fetch failed")

	// ErrSessionCheckFailed: the session-check endpoint failed; the previous
	// session state is left intact.
	ErrSessionCheckFailed = errors.New("session check failed")
)
