package source

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is used when no charset is configured.
const DefaultCharset = "utf-8"

// Load reads a file, decodes it from charset, strips a UTF-8 BOM and
// normalises CRLF line endings. The buffer id is the cleaned path.
func Load(path, charset string) (*Buffer, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, raw, charset)
}

// Decode builds a buffer from raw bytes in the given charset.
func Decode(id string, raw []byte, charset string) (*Buffer, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	content := raw
	if enc != nil {
		content, err = enc.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s as %s: %w", id, charset, err)
		}
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := BufferFlags(0)
	if hadBOM {
		flags |= BufferHadBOM
	}
	if hadCRLF {
		flags |= BufferNormalizedCRLF
	}
	return newBuffer(normalizePath(id), string(content), flags), nil
}

// lookupCharset returns nil for UTF-8, which needs no decoding.
func lookupCharset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}
