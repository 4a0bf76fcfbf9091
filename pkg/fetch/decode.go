package fetch

import (
	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// DecodeText converts raw fetched bytes to a UTF-8 string. The charset is
// detected with chardet; an inconclusive detection or an unknown charset
// name falls back to UTF-8. Malformed sequences are replaced, never
// rejected, so this always returns a string.
func DecodeText(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	name := "utf-8"
	if res, err := chardet.NewTextDetector().DetectBest(data); err == nil && res.Charset != "" {
		name = res.Charset
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		// chardet knows charsets the HTML index does not (e.g. some EBCDIC
		// variants); treat those as UTF-8.
		return string(data)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
