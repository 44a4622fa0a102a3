package tabular

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

// ----------------------------------------------------------------------------
// bomSkipper
// ----------------------------------------------------------------------------

func TestBOMSkipper(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "bom removed", input: []byte("\xEF\xBB\xBFx,y"), want: "x,y"},
		{name: "no bom untouched", input: []byte("x,y"), want: "x,y"},
		{name: "bom only", input: []byte("\xEF\xBB\xBF"), want: ""},
		{name: "shorter than bom", input: []byte("ab"), want: "ab"},
		{name: "partial bom is data", input: []byte("\xEF\xBBx"), want: "\xEF\xBBx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newBOMSkipper(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// utf8Sanitizer
// ----------------------------------------------------------------------------

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "ascii passes through", input: []byte("a,b,c"), want: "a,b,c"},
		{name: "valid multibyte passes through", input: []byte("caf\xC3\xA9"), want: "café"},
		{name: "invalid byte replaced", input: []byte("caf\xFF!"), want: "caf?!"},
		{name: "truncated sequence at eof", input: []byte("caf\xC3"), want: "caf?"},
		{name: "stray continuation bytes", input: []byte("a\x80\x80b"), want: "a??b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newUTF8Sanitizer(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUTF8Sanitizer_SplitReads(t *testing.T) {
	// A multi-byte sequence split across read boundaries must survive; the
	// one-byte reader forces the worst case.
	src := iotest.OneByteReader(strings.NewReader("é,ü,ß"))
	got, err := io.ReadAll(newUTF8Sanitizer(src))
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if string(got) != "é,ü,ß" {
		t.Errorf("got %q, want %q", got, "é,ü,ß")
	}
}

// ----------------------------------------------------------------------------
// wrapSource and declared encodings
// ----------------------------------------------------------------------------

func TestWrapSource_Latin1(t *testing.T) {
	r, err := wrapSource(bytes.NewReader([]byte("caf\xE9")), "latin-1")
	if err != nil {
		t.Fatalf("wrapSource error = %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if string(got) != "café" {
		t.Errorf("got %q, want %q", got, "café")
	}
}

func TestWrapSource_UnknownEncoding(t *testing.T) {
	_, err := wrapSource(strings.NewReader("x"), "ebcdic")

	var malformed *MalformedSourceError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedSourceError", err)
	}
}

func TestParseReader_DeclaredEncoding(t *testing.T) {
	opts := DefaultReadOptions()
	opts.Encoding = "latin-1"

	raw, err := ParseReader(bytes.NewReader([]byte("city\nZ\xFCrich\n")), opts)
	if err != nil {
		t.Fatalf("ParseReader error = %v", err)
	}
	if !reflect.DeepEqual(raw.Rows, [][]string{{"Zürich"}}) {
		t.Errorf("Rows = %q, want [[Zürich]]", raw.Rows)
	}
}

func TestParseReader_BOM(t *testing.T) {
	raw, err := ParseReader(bytes.NewReader([]byte("\xEF\xBB\xBFx,y\n1,2\n")), DefaultReadOptions())
	if err != nil {
		t.Fatalf("ParseReader error = %v", err)
	}
	// The BOM must not end up glued onto the first column name.
	if !reflect.DeepEqual(raw.Names, []string{"x", "y"}) {
		t.Errorf("Names = %q, want [x y]", raw.Names)
	}
}
