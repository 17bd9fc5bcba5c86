package digest

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/ripemd160"

	"dynvar/jsonio"
	"dynvar/types"
)

// DefaultAlgorithm is used when no algorithm is named
const DefaultAlgorithm = "sha256"

// Algorithms lists the supported algorithm names
func Algorithms() []string {
	return []string{"md5", "sha1", "sha224", "sha256", "sha384", "sha512", "ripemd160"}
}

func newHash(algo string) func() hash.Hash {
	switch strings.ToLower(algo) {
	case "md5":
		return md5.New
	case "sha1":
		return sha1.New
	case "sha224":
		return sha256.New224
	case "sha256", "":
		return sha256.New
	case "sha384":
		return sha512.New384
	case "sha512":
		return sha512.New
	case "ripemd160":
		return ripemd160.New
	default:
		return nil
	}
}

// Canonical returns the text a digest is computed over: the compact JSON
// form, with object keys sorted. Integers of either subkind share it when
// their values match, so a Signed 3 and an Unsigned 3 hash alike. A Real
// keeps its fraction, so 3.0 hashes differently from 3 although the two
// are Equal.
func Canonical(v types.Value) (string, error) {
	return jsonio.ToJSON(v)
}

// Sum hashes the canonical form of v and returns uppercase hex
func Sum(v types.Value, algo string) (string, error) {
	mk := newHash(algo)
	if mk == nil {
		return "", types.NewRangeError("digest", "unknown algorithm %q", algo)
	}
	text, err := Canonical(v)
	if err != nil {
		return "", err
	}
	h := mk()
	h.Write([]byte(text))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

// HMAC is Sum keyed with key
func HMAC(v types.Value, key []byte, algo string) (string, error) {
	mk := newHash(algo)
	if mk == nil {
		return "", types.NewRangeError("hmac", "unknown algorithm %q", algo)
	}
	text, err := Canonical(v)
	if err != nil {
		return "", err
	}
	mac := hmac.New(mk, key)
	mac.Write([]byte(text))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil))), nil
}
