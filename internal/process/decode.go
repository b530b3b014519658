package process

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode turns captured tool output into printable text. Output is treated as
// UTF-8 (a leading BOM is dropped) and invalid byte sequences are replaced
// with U+FFFD instead of failing the build report.
func Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
