package booking

import "github.com/google/uuid"

// TokenMinter issues redemption tokens.  Abstracted so tests can mint
// predictable values.
type TokenMinter interface {
	// Mint returns a token unique across the whole system.
	Mint() string
}

// UUIDMinter mints opaque check-in tokens as random UUIDs.  The value
// carries no semantic content; staff and customers treat it purely as a
// credential, and the reservations.token unique index backs up the
// uniqueness guarantee.
type UUIDMinter struct{}

// Mint returns a new random token.
func (UUIDMinter) Mint() string { return uuid.NewString() }
