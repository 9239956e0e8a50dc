package users

import (
	"bytes"
	"mime/multipart"
	"testing"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func openPart(b []byte) multipart.File {
	return memFile{bytes.NewReader(b)}
}

// Magic-number prefixes for the accepted document types.
var (
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	bmpHead  = []byte{'B', 'M', 0x36, 0x00, 0x00, 0x00}
	pdfHead  = []byte("%PDF-1.7\n%âãÏÓ\n")
)

func TestSniffDocumentTypeAccepted(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		mime string
		ext  string
	}{
		{"jpeg", jpegHead, "image/jpeg", ".jpg"},
		{"png", pngHead, "image/png", ".png"},
		{"bmp", bmpHead, "image/bmp", ".bmp"},
		{"pdf", pdfHead, "application/pdf", ".pdf"},
	}
	for _, c := range cases {
		mime, ext, head, err := SniffDocumentType(openPart(c.data))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if mime != c.mime || ext != c.ext {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", c.name, mime, ext, c.mime, c.ext)
		}
		if !bytes.Equal(head, c.data) {
			t.Errorf("%s: sniffed head must hold the consumed bytes for replay", c.name)
		}
	}
}

func TestSniffDocumentTypeRejected(t *testing.T) {
	// Content decides, not the filename: a renamed script or a GIF must come
	// back with no extension assigned.
	cases := []struct {
		name string
		data []byte
	}{
		{"plain text", []byte("transaction id: 12345, paid via NEFT")},
		{"html", []byte("<!DOCTYPE html><html><body>receipt</body></html>")},
		{"gif", []byte("GIF89a\x01\x00\x01\x00")},
		{"zip", []byte{'P', 'K', 0x03, 0x04, 0x00, 0x00}},
		{"empty", nil},
	}
	for _, c := range cases {
		_, ext, _, err := SniffDocumentType(openPart(c.data))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if ext != "" {
			t.Errorf("%s: got extension %q, want rejection", c.name, ext)
		}
	}
}

func TestSniffDocumentTypeStripsCharset(t *testing.T) {
	mime, _, _, err := SniffDocumentType(openPart([]byte("hello world")))
	if err != nil {
		t.Fatal(err)
	}
	if mime != "text/plain" {
		t.Errorf("mime = %q, want bare %q without parameters", mime, "text/plain")
	}
}
