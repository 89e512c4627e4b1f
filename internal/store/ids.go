package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// NewPresetID returns t-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding), comfortably collision-free for a preset list.
func NewPresetID() string {
	var b [5]byte // 40 bits -> 8 base32 chars
	rand.Read(b[:])
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "t-" + strings.ToLower(enc.EncodeToString(b[:]))
}
