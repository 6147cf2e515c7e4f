package lastfm

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// calculateSignature generates the api_sig for a request.
//
// The signature is the MD5 of every parameter as name+value, in
// alphabetical order of name, followed by the API secret. The format
// and callback parameters are never signed.
func calculateSignature(params Params, secret string) string {
	var b strings.Builder
	for _, k := range params.Keys() {
		if k == "format" || k == "callback" {
			continue
		}
		b.WriteString(k)
		b.WriteString(params[k])
	}
	b.WriteString(secret)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
