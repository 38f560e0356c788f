// Package id renders identifiers as 26-character lowercase base32 strings of
// UUID bytes.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenomeNamespace scopes deterministic genome identifiers.
var GenomeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/louisbranch/oripheon/genome"))

// NewID returns a random (version 4) identifier.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return Format(u), nil
}

// Derive returns the version 5 identifier of data within namespace. Equal
// inputs always yield equal identifiers.
func Derive(namespace uuid.UUID, data []byte) string {
	return Format(uuid.NewSHA1(namespace, data))
}

// Format renders u in the identifier alphabet.
func Format(u uuid.UUID) string {
	return strings.ToLower(encoding.EncodeToString(u[:]))
}

// Parse decodes an identifier back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	decoded, err := encoding.DecodeString(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode id %q: %w", s, err)
	}
	u, err := uuid.FromBytes(decoded)
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode id %q: %w", s, err)
	}
	return u, nil
}
