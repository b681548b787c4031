package column

import (
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var charsets sync.Map // name -> encoding.Encoding, nil for unknown names

func charset(name string) encoding.Encoding {
	if v, ok := charsets.Load(name); ok {
		enc, _ := v.(encoding.Encoding)
		return enc
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		enc = nil
	}
	charsets.Store(name, enc)
	return enc
}

// DecodeBytes converts b to text in the configured encoding. Unknown
// encodings and undecodable input fall back to UTF-8 with invalid
// sequences replaced.
func DecodeBytes(b []byte) string {
	name := CurrentDisplay().Encoding
	if name != "" {
		if enc := charset(name); enc != nil && enc != unicode.UTF8 {
			if out, err := enc.NewDecoder().Bytes(b); err == nil {
				return string(out)
			}
		}
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
