package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTextUTF8(t *testing.T) {
	require.Equal(t, "Café ✓ PASSED", DecodeText([]byte("Café ✓ PASSED")))
}

func TestDecodeTextLatin1(t *testing.T) {
	// "Café" encoded as ISO-8859-1.
	require.Equal(t, "Café", DecodeText([]byte{'C', 'a', 'f', 0xE9}))
}

func TestDecodeTextNormalizesLineEndings(t *testing.T) {
	require.Equal(t, "a\nb\nc\n", DecodeText([]byte("a\r\nb\rc\r\n")))
}
