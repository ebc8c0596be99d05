// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jtok"
)

// benchInput synthesizes a document in the grammar subset both tokenizers
// accept: no escapes, no signs, no exponents.
func benchInput() []byte {
	var sb strings.Builder
	sb.WriteString(`{"records": [`)
	for i := 0; i < 2000; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"id": %d, "score": %d.%02d, "name": "record number %d", "ok": %v, "note": null}`,
			i, i%97, i%100, i, i%3 == 0)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String())
}

func BenchmarkScanner(b *testing.B) {
	input := benchInput()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s := jtok.NewScanner(bytes.NewReader(input))
			for {
				err := s.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Tokenize", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := jtok.Tokenize(bytes.NewReader(input)); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
