package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FingerprintSessionID derives a session id from client traits. The id rotates every hour.
func FingerprintSessionID(clientIP, userAgent string) string {
	hash := md5.Sum([]byte(clientIP + userAgent + fmt.Sprintf("%d", time.Now().Unix()/3600)))
	return hex.EncodeToString(hash[:])[:16]
}

// MD5Hash generates MD5 hash of input string
func MD5Hash(input string) string {
	hash := md5.Sum([]byte(input))
	return hex.EncodeToString(hash[:])
}

// ValidateSessionID accepts 16-char hex fingerprints and 36-char uuids.
func ValidateSessionID(sessionID string) bool {
	switch len(sessionID) {
	case 16:
		_, err := hex.DecodeString(sessionID)
		return err == nil
	case 36:
		return uuid.Validate(sessionID) == nil
	}
	return false
}
