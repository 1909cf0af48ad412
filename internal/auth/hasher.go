package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme names a digest format for newly hashed passwords
type Scheme string

const (
	SchemeBcrypt Scheme = "bcrypt"
	// SchemeMD5 is the unsalted hex MD5 digest found in older data.json files
	SchemeMD5 Scheme = "md5"
)

// Hasher turns plaintext passwords into stored digests and checks them.
// Verification accepts both formats regardless of the configured scheme.
type Hasher struct {
	scheme Scheme
	cost   int
}

// NewHasher creates a hasher; cost is only used by bcrypt
func NewHasher(scheme Scheme, cost int) (Hasher, error) {
	switch scheme {
	case SchemeBcrypt:
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return Hasher{}, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
	case SchemeMD5:
	default:
		return Hasher{}, fmt.Errorf("unknown hash scheme: %s", scheme)
	}
	return Hasher{scheme: scheme, cost: cost}, nil
}

// Scheme returns the scheme used for new digests
func (h Hasher) Scheme() Scheme {
	return h.scheme
}

// Hash returns the digest of a UTF-8 password
func (h Hasher) Hash(password string) (string, error) {
	if h.scheme == SchemeMD5 {
		return md5Hex(password), nil
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest
func (h Hasher) Verify(digest, password string) bool {
	if isBcrypt(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(md5Hex(password))) == 1
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2")
}

func md5Hex(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
