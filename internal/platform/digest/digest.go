// Package digest provides the one-way transforms applied to account secrets
// before they leave the process. The helper and the client must agree on the
// algorithm; md5 is what existing helpers expect.
package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	apperrors "syncacct/internal/platform/errors"
)

type Algorithm string

const (
	MD5     Algorithm = "md5"
	SHA256  Algorithm = "sha256"
	SHA3256 Algorithm = "sha3-256"
	BLAKE3  Algorithm = "blake3"

	Default = MD5
)

var constructors = map[Algorithm]func() hash.Hash{
	MD5:     md5.New,
	SHA256:  sha256.New,
	SHA3256: func() hash.Hash { return sha3.New256() },
	BLAKE3:  func() hash.Hash { return blake3.New() },
}

// Algorithms lists the supported names in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA256, SHA3256, BLAKE3}
}

func ParseAlgorithm(name string) (Algorithm, error) {
	algorithm := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if algorithm == "" {
		return Default, nil
	}
	if _, ok := constructors[algorithm]; !ok {
		return "", fmt.Errorf("%w: unknown digest algorithm %q", apperrors.ErrInvalidConfig, name)
	}
	return algorithm, nil
}

// Hasher renders secrets as lowercase hex digests.
type Hasher struct {
	algorithm Algorithm
	newHash   func() hash.Hash
}

func New(name string) (Hasher, error) {
	algorithm, err := ParseAlgorithm(name)
	if err != nil {
		return Hasher{}, err
	}
	return Hasher{algorithm: algorithm, newHash: constructors[algorithm]}, nil
}

func (h Hasher) Algorithm() Algorithm {
	return h.algorithm
}

func (h Hasher) Hash(secret string) string {
	digest := h.newHash()
	_, _ = digest.Write([]byte(secret))
	return hex.EncodeToString(digest.Sum(nil))
}
