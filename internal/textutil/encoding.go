// Package textutil repairs message text before it reaches the triage
// engine. Ingested subjects and bodies occasionally arrive in legacy
// charsets; scoring works on case-folded substrings, so everything
// must be valid UTF-8 first.
package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// candidate encodings tried in order when detection fails. Windows-1252
// covers most Western clinical-system exports; the rest are a small
// tail seen in practice.
var fallbackEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
	japanese.ShiftJIS,
	simplifiedchinese.GBK,
}

// EnsureUTF8 returns s unchanged when it is already valid UTF-8.
// Otherwise it attempts charset detection, then the fallback encoding
// list, and as a last resort replaces invalid bytes so the caller
// always gets a string safe to fold and match.
func EnsureUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	data := []byte(s)

	if result, err := chardet.NewTextDetector().DetectBest(data); err == nil && result.Confidence >= 40 {
		if enc := encodingByName(result.Charset); enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
				return string(decoded)
			}
		}
	}

	for _, enc := range fallbackEncodings {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}

	return replaceInvalid(s)
}

// replaceInvalid substitutes each invalid byte with U+FFFD.
func replaceInvalid(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune('�')
			i++
			continue
		}
		sb.WriteRune(r)
		i += size
	}
	return sb.String()
}

// encodingByName maps the detector's IANA charset names onto decoders
// for the charsets we handle.
func encodingByName(name string) encoding.Encoding {
	switch strings.ToLower(name) {
	case "windows-1252", "cp1252":
		return charmap.Windows1252
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS
	case "gb2312", "gbk", "gb18030":
		return simplifiedchinese.GBK
	default:
		return nil
	}
}
