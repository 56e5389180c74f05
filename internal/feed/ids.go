package feed

import (
	"crypto/rand"
	"math/big"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PostIDLength is the length of post and block identifiers.
const PostIDLength = 12

// NewID returns a random alphanumeric identifier of the given length. With 62
// symbols per position a 12-char id makes collisions negligible for the
// lifetime of the process.
func NewID(length int) string {
	max := big.NewInt(int64(len(idAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// nothing sensible to do but stop.
			panic(err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return string(buf)
}
