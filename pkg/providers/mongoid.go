package providers

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// MongoID derives a stable 12-byte ObjectId, in its 24-character hex form,
// from a provider id and type: the two are concatenated, cut to at most 12
// bytes without splitting a UTF-8 sequence, then padded with '0' to 12 bytes.
func MongoID(id, typ string) string {
	const size = 12
	oid := id + typ
	if len(oid) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(oid[cut]) {
			cut--
		}
		oid = oid[:cut]
	}
	oid += strings.Repeat("0", size-len(oid))
	return hex.EncodeToString([]byte(oid))
}
