package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Used for request ids and for
// snapshot ids when the caller supplies no idempotency key.
var NewULID = func() string {
	return ulid.Make().String()
}
