package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// RandomHex returns n random bytes as a lowercase hex string
func RandomHex(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHexUpper returns n random bytes as an uppercase hex string
func RandomHexUpper(n int) string {
	return strings.ToUpper(RandomHex(n))
}
