package mdxfile

import (
	"encoding/hex"

	"github.com/mdxapi/mdxfile/mdx"
	"golang.org/x/crypto/blake2b"
)

// Sum is a BLAKE2b-256 digest of encoded model data.
type Sum [blake2b.Size256]byte

func (s Sum) String() string {
	return hex.EncodeToString(s[:])
}

// Digest returns the digest of data. Packed data is digested as is.
func Digest(data []byte) Sum {
	return blake2b.Sum256(data)
}

// DigestModel returns the digest of the MDX encoding of m. Two models have
// the same digest if they encode to the same bytes.
func DigestModel(m *mdx.Model) (Sum, error) {
	data, err := mdx.Serialize(m)
	if err != nil {
		return Sum{}, err
	}
	return Digest(data), nil
}
