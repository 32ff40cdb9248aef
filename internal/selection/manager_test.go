package selection

import (
	"errors"
	"testing"

	"github.com/ytget/img2video/internal/model"
)

func names(images []model.ImageInput) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.Name
	}
	return out
}

func TestNewManager(t *testing.T) {
	m := NewManager()

	if m.Count() != 0 {
		t.Errorf("Expected empty selection, got %d items", m.Count())
	}
	if m.Summary() != "" {
		t.Errorf("Expected empty summary, got '%s'", m.Summary())
	}
	if m.Params() != model.DefaultParams() {
		t.Errorf("Expected default params, got %+v", m.Params())
	}
}

func TestSelectImages_SortsByName(t *testing.T) {
	m := NewManager()

	got := m.SelectImages([]model.RawFile{
		{Name: "b.png", MediaType: "image/png"},
		{Name: "a.jpg", MediaType: "image/jpeg"},
		{Name: "c.jpg", MediaType: "image/jpeg"},
	})

	expected := []string{"a.jpg", "b.png", "c.jpg"}
	gotNames := names(got)
	if len(gotNames) != len(expected) {
		t.Fatalf("Expected %d images, got %d", len(expected), len(gotNames))
	}
	for i := range expected {
		if gotNames[i] != expected[i] {
			t.Errorf("Image %d: expected %s, got %s", i, expected[i], gotNames[i])
		}
	}

	if m.Summary() != "3 images selected" {
		t.Errorf("Expected summary '3 images selected', got '%s'", m.Summary())
	}
}

func TestSelectImages_FiltersNonImages(t *testing.T) {
	m := NewManager()

	got := m.SelectImages([]model.RawFile{
		{Name: "notes.txt", MediaType: "text/plain"},
		{Name: "frame2.png", MediaType: "image/png"},
		{Name: "clip.mp4", MediaType: "video/mp4"},
		{Name: "frame1.png", MediaType: "image/png"},
		{Name: "unknown.bin", MediaType: ""},
	})

	gotNames := names(got)
	if len(gotNames) != 2 || gotNames[0] != "frame1.png" || gotNames[1] != "frame2.png" {
		t.Errorf("Expected [frame1.png frame2.png], got %v", gotNames)
	}
	if m.Summary() != "2 images selected" {
		t.Errorf("Expected summary '2 images selected', got '%s'", m.Summary())
	}
}

func TestSelectImages_ReplacesPreviousSelection(t *testing.T) {
	m := NewManager()

	m.SelectImages([]model.RawFile{
		{Name: "a.jpg", MediaType: "image/jpeg"},
		{Name: "b.jpg", MediaType: "image/jpeg"},
	})

	m.SelectImages([]model.RawFile{
		{Name: "z.jpg", MediaType: "image/jpeg"},
	})

	gotNames := names(m.Images())
	if len(gotNames) != 1 || gotNames[0] != "z.jpg" {
		t.Errorf("Expected selection to be replaced with [z.jpg], got %v", gotNames)
	}

	// Image-free input still discards the prior selection
	m.SelectImages([]model.RawFile{{Name: "readme.md", MediaType: "text/markdown"}})
	if m.Count() != 0 {
		t.Errorf("Expected empty selection, got %d", m.Count())
	}
	if m.Summary() != "0 images selected" {
		t.Errorf("Expected summary '0 images selected', got '%s'", m.Summary())
	}

	m.SelectImages(nil)
	if m.Count() != 0 {
		t.Errorf("Expected empty selection after nil input, got %d", m.Count())
	}
}

func TestImages_ReturnsCopy(t *testing.T) {
	m := NewManager()
	m.SelectImages([]model.RawFile{{Name: "a.jpg", MediaType: "image/jpeg"}})

	images := m.Images()
	images[0].Name = "mutated.jpg"

	if m.Images()[0].Name != "a.jpg" {
		t.Error("Mutating the snapshot should not change the selection")
	}
}

func TestSetters(t *testing.T) {
	m := NewManager()

	m.SetOutputName("my holiday")
	if m.Params().OutputName != "my holiday" {
		t.Errorf("Expected output name 'my holiday', got '%s'", m.Params().OutputName)
	}

	m.SetOutputName("")
	if m.Params().OutputName != "" {
		t.Error("Empty output name should be accepted as free text")
	}

	if err := m.SetFPS(25); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.Params().FPS != 25 {
		t.Errorf("Expected fps 25, got %d", m.Params().FPS)
	}

	err := m.SetFPS(24)
	if !errors.Is(err, ErrInvalidFPS) {
		t.Errorf("Expected ErrInvalidFPS, got %v", err)
	}
	if m.Params().FPS != 25 {
		t.Errorf("Invalid fps should not change state, got %d", m.Params().FPS)
	}

	if err := m.SetMusic(model.MusicCustom); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.Params().Music != model.MusicCustom {
		t.Errorf("Expected music %s, got %s", model.MusicCustom, m.Params().Music)
	}

	err = m.SetMusic("Jazz")
	if !errors.Is(err, ErrInvalidMusic) {
		t.Errorf("Expected ErrInvalidMusic, got %v", err)
	}
	if m.Params().Music != model.MusicCustom {
		t.Errorf("Invalid music should not change state, got %s", m.Params().Music)
	}
}
