// Package storage provides content-hash addressing and object storage for
// uploaded files.
package storage

import (
	"crypto/md5"
	"encoding/hex"
)

// Sum returns the lowercase hex MD5 digest of data. The digest is used as
// the storage key so identical uploads collapse onto one object.
func Sum(data []byte) string {
	h := md5.Sum(data)
	return hex.EncodeToString(h[:])
}

// ObjectPath returns the storage path for a content hash.
func ObjectPath(hash string) string {
	return "private/" + hash
}

// ValidHash reports whether s is a well-formed lowercase hex MD5 digest.
func ValidHash(s string) bool {
	if len(s) != md5.Size*2 {
		return false
	}
	for _, ch := range s {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') {
			return false
		}
	}
	return true
}
