package util

import (
	"bytes"
	"testing"
)

func TestValidateMimeType(t *testing.T) {
	// Minimal PNG header; DetectContentType only needs the magic bytes.
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 100)...)

	mime, err := ValidateMimeType(bytes.NewReader(png), []string{"image/"})
	if err != nil {
		t.Fatalf("png rejected: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}

	if _, err := ValidateMimeType(bytes.NewReader(png), []string{"video/"}); err == nil {
		t.Errorf("png accepted as video")
	}

	if _, err := ValidateMimeType(bytes.NewReader([]byte("plain text")), []string{"image/"}); err == nil {
		t.Errorf("text accepted as image")
	}
}

func TestMimePredicates(t *testing.T) {
	tests := []struct {
		mime         string
		image, video bool
	}{
		{"image/png", true, false},
		{"image/jpeg", true, false},
		{"video/mp4", false, true},
		{"application/x-mpegURL", false, true},
		{"text/plain", false, false},
	}
	for _, tt := range tests {
		if got := IsImage(tt.mime); got != tt.image {
			t.Errorf("IsImage(%q) = %v, want %v", tt.mime, got, tt.image)
		}
		if got := IsVideo(tt.mime); got != tt.video {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.mime, got, tt.video)
		}
	}
}
