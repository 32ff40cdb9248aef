package model

import "testing"

func TestRawFile_IsImage(t *testing.T) {
	tests := []struct {
		mediaType string
		expected  bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"IMAGE/GIF", true},
		{"video/mp4", false},
		{"text/plain; charset=utf-8", false},
		{"", false},
	}

	for _, test := range tests {
		f := RawFile{Name: "x", MediaType: test.mediaType}
		if got := f.IsImage(); got != test.expected {
			t.Errorf("RawFile{MediaType: %q}.IsImage() = %v, expected %v", test.mediaType, got, test.expected)
		}
	}
}

func TestImageInput_Size(t *testing.T) {
	in := ImageInput{Name: "a.jpg", Data: make([]byte, 42)}
	if in.Size() != 42 {
		t.Errorf("Expected size 42, got %d", in.Size())
	}
}
