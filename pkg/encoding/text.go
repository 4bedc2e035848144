// Package encoding provides text encoding utilities for 3MF model parts.
package encoding

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts a model part to UTF-8.
// A UTF-8 or UTF-16 byte order mark selects the source encoding and is
// stripped; without one the data is treated as UTF-8.
func DecodeText(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}
	return result, nil
}

// CharsetReader returns a reader that converts the named charset to UTF-8.
// It has the signature expected by encoding/xml.Decoder.CharsetReader.
// Unicode labels pass through unchanged since DecodeText has already
// normalized the stream.
func CharsetReader(label string, in io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be", "unicode":
		return in, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return transform.NewReader(in, enc.NewDecoder()), nil
}
