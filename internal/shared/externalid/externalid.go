// Package externalid generates the opaque identifiers exposed to clients in
// place of primary keys.
package externalid

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a 32 character lowercase hex identifier.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
