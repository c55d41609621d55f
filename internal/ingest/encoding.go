package ingest

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// sniffWindow bounds how much of the buffer encoding detection inspects,
// per spec §4.6 step 2 ("inspect first 10 KiB").
const sniffWindow = 10 * 1024

// candidateEncodingNames lists the encodings decodeText can report. A
// UTF-8 BOM is checked before plain UTF-8, and the UTF-16 variants are
// tried only when their BOM is present; otherwise the first that decodes
// the full buffer without error wins.
var candidateEncodingNames = []string{"utf-8", "utf-8-bom", "utf-16le", "utf-16be", "windows-1252", "latin-1"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText implements §4.6 step 2. It returns the decoded UTF-8 text and
// the winning encoding name, or an EncodingError if nothing decodes
// cleanly.
func decodeText(raw []byte) (string, string, error) {
	window := raw
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}

	if bytes.HasPrefix(raw, utf8BOM) {
		text := string(bytes.TrimPrefix(raw, utf8BOM))
		if utf8.ValidString(text) {
			return text, "utf-8-bom", nil
		}
	}

	if utf8.Valid(window) && utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}

	if hasUTF16LEBOM(raw) {
		if text, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), raw); err == nil {
			return text, "utf-16le", nil
		}
	}
	if hasUTF16BEBOM(raw) {
		if text, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), raw); err == nil {
			return text, "utf-16be", nil
		}
	}

	if text, err := decodeWith(charmap.Windows1252, raw); err == nil {
		return text, "windows-1252", nil
	}
	if text, err := decodeWith(charmap.ISO8859_1, raw); err == nil {
		return text, "latin-1", nil
	}

	return "", "", &EncodingError{Attempted: candidateEncodingNames}
}

func hasUTF16LEBOM(raw []byte) bool {
	return len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE
}

func hasUTF16BEBOM(raw []byte) bool {
	return len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(decoded) {
		return "", &EncodingError{Attempted: candidateEncodingNames}
	}
	return string(decoded), nil
}
