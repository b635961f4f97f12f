package storage

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// legacyEncodings are tried in order when the bytes are not valid UTF-8.
var legacyEncodings = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// DecodeText converts raw log bytes to text. UTF-8 is preferred, then the legacy
// single-byte encodings, and finally a lossy UTF-8 decode with U+FFFD
// replacements. Line endings are normalized to "\n".
func DecodeText(data []byte) string {
	return newlineReplacer.Replace(decodeBytes(data))
}

func decodeBytes(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	for _, enc := range legacyEncodings {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(decoded)
		}
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
