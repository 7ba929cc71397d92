package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/euer/internal/encoding"
)

const header = "Buchungsdatum;Empfänger;Verwendungszweck;Betrag\n02.01.2025;Bäckerei Müller;Brötchen für Büro;-4,50\n"

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	encode := func(t *testing.T, enc interface{ Bytes([]byte) ([]byte, error) }) []byte {
		b, err := enc.Bytes([]byte(header))
		require.NoError(t, err)

		return b
	}

	type testCase struct {
		name  string
		input func(t *testing.T) []byte
	}

	tests := []testCase{
		{
			name:  "UTF8Passthrough",
			input: func(*testing.T) []byte { return []byte(header) },
		},
		{
			name:  "UTF8BOM",
			input: func(*testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, header...) },
		},
		{
			name: "Windows1252",
			input: func(t *testing.T) []byte {
				return encode(t, charmap.Windows1252.NewEncoder())
			},
		},
		{
			name: "UTF16LE",
			input: func(t *testing.T) []byte {
				return encode(t, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
			},
		},
		{
			name: "UTF16BE",
			input: func(t *testing.T) []byte {
				return encode(t, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, header, readAll(t, tt.input(t)))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Empty(t, readAll(t, nil))
}

func TestNewUTF8Reader_RuneAtSniffBoundary(t *testing.T) {
	// "ü" straddles the 4096 byte sniff window.
	input := strings.Repeat("a", 4095) + "ü;-1,00\n"

	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, encoding.UTF8, encoding.Detect([]byte("plain ascii")))
	assert.Equal(t, encoding.UTF8BOM, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.UTF16LE, encoding.Detect([]byte{0xFF, 0xFE, 'a', 0}))
	assert.Equal(t, encoding.Windows1252, encoding.Detect([]byte{'M', 0xFC, 'l', 'l', 'e', 'r'}))
}
