package extract

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const probeSize = 512

var binaryMagics = [][]byte{
	[]byte("%PDF"),
	[]byte("PK\x03\x04"),
	[]byte("\x7fELF"),
	[]byte("\x1f\x8b"),
	[]byte("GIF8"),
	[]byte("\x89PNG"),
	[]byte("\xff\xd8\xff"),
}

// decodeText converts raw input bytes into sanitized UTF-8 text. Valid UTF-8
// passes through, UTF-16 is recognized by its BOM, and anything else is
// decoded as Windows-1252. Known binary formats are rejected.
func decodeText(data []byte) (string, error) {
	if looksBinary(data) {
		return "", ErrBinaryFile
	}

	if utf8.Valid(data) {
		return sanitizeText(string(data)), nil
	}

	decoder := textunicode.BOMOverride(charmap.Windows1252.NewDecoder())

	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		decoded = bytes.ToValidUTF8(data, []byte("�"))
	}

	return sanitizeText(string(decoded)), nil
}

func looksBinary(data []byte) bool {
	if hasUTF16BOM(data) {
		return false
	}

	for _, magic := range binaryMagics {
		if bytes.HasPrefix(data, magic) {
			return true
		}
	}

	probe := data
	if len(probe) > probeSize {
		probe = probe[:probeSize]
	}

	return bytes.IndexByte(probe, 0) >= 0
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// sanitizeText normalizes line endings and strips control characters that
// upset downstream rendering. Tabs and newlines survive.
func sanitizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}

		return r
	}, text)

	return strings.TrimSpace(text)
}

func probeHead(body string) string {
	if len(body) > probeSize {
		return body[:probeSize]
	}

	return body
}
