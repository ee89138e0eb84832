package service

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces the random part of the human-readable order id.
type IDGenerator interface {
	Suffix() string
}

// UUIDGenerator derives the suffix from a v4 UUID. The suffix is for
// humans; the store's auto-increment id is the uniqueness authority.
type UUIDGenerator struct{}

func (UUIDGenerator) Suffix() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}
