package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainValue prefixes value hashes. The version suffix allows the rendering
// to change without colliding with older IDs.
const DomainValue = "exhaustive/value/v1"

// ID computes the content-addressed identity of v:
// hex(SHA256(DomainValue + 0x00 + canonical(v))).
func ID(v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("value ID: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainValue))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustID is like ID but panics on error.
func MustID(v Value) string {
	id, err := ID(v)
	if err != nil {
		panic(err)
	}
	return id
}
