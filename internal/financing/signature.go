package financing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the HMAC-SHA256 digest of the canonical string under the
// pre-shared secret and renders it as lower-case hexadecimal. Both
// inputs are taken as raw UTF-8 bytes.
func Sign(canonical, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayload canonicalizes the payload's signed fields and signs the
// result.
func SignPayload(p Payload, secret string) string {
	return Sign(Canonicalize(p.SignedFields()), secret)
}
