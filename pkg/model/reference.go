package model

import (
	"encoding/base64"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyQuery       = goerr.New("query must not be empty")
	ErrInvalidReference = goerr.New("invalid reference")
)

// Query is a free-text question submitted to the upstream QA API. Beyond
// non-emptiness no validation is applied here; length and content limits
// belong to the upstream.
type Query string

// Validate checks that the query is usable
func (q Query) Validate() error {
	if q == "" {
		return ErrEmptyQuery
	}
	return nil
}

// Reference is an opaque token that reversibly encodes exactly one Query.
// It is an encoding, not a credential: anyone holding a reference can
// recover the query, and anyone can forge a reference for any query. That
// is acceptable because resolving a reference is idempotent and carries no
// permission. The payoff is that search and fetch need no shared state.
type Reference string

// NewReference encodes a query into a URL-safe reference token.
// The same query always yields the same reference.
func NewReference(q Query) Reference {
	return Reference(base64.URLEncoding.EncodeToString([]byte(q)))
}

// Query recovers the original query from the reference. Malformed tokens
// (wrong alphabet, bad padding, or an empty payload) fail with
// ErrInvalidReference.
func (r Reference) Query() (Query, error) {
	raw, err := base64.URLEncoding.DecodeString(string(r))
	if err != nil {
		return "", goerr.Wrap(ErrInvalidReference, "failed to decode reference",
			goerr.V("reference", string(r)),
			goerr.V("cause", err.Error()))
	}
	if len(raw) == 0 {
		return "", goerr.Wrap(ErrInvalidReference, "reference encodes an empty query",
			goerr.V("reference", string(r)))
	}

	return Query(raw), nil
}
