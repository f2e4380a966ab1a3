package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func createTestJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255}))
	return buf.Bytes()
}

func TestProcessFormats(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"jpeg", createTestJPEG(100, 100)},
		{"png", createTestPNG(100, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo, err := Process(bytes.NewReader(tt.data), DefaultOptions)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if photo.MIME != "image/jpeg" {
				t.Errorf("expected image/jpeg (always outputs JPEG), got %s", photo.MIME)
			}
			if len(photo.Data) == 0 {
				t.Error("expected non-empty data")
			}
		})
	}
}

func TestProcessDownscaleKeepsAspect(t *testing.T) {
	photo, err := Process(bytes.NewReader(createTestJPEG(2048, 1024)), DefaultOptions)
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}
	if photo.Width != 1024 || photo.Height != 512 {
		t.Errorf("expected 1024x512, got %dx%d", photo.Width, photo.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 512 {
		t.Errorf("encoded image is %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	photo, err := Process(bytes.NewReader(createTestJPEG(50, 50)), DefaultOptions)
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}
	if photo.Width != 50 || photo.Height != 50 {
		t.Errorf("small image should not be resized: got %dx%d", photo.Width, photo.Height)
	}
}

func TestThumbnail(t *testing.T) {
	thumb, err := Thumbnail(createTestPNG(300, 600))
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb.Height != ThumbDimension || thumb.Width != 128 {
		t.Errorf("expected 128x%d, got %dx%d", ThumbDimension, thumb.Width, thumb.Height)
	}
}

func TestProcessRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not an image", []byte("not an image")},
		{"gif", []byte("GIF89a...")},
	}
	for _, tt := range tests {
		if _, err := Process(bytes.NewReader(tt.data), DefaultOptions); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestProcessTooLarge(t *testing.T) {
	big := make([]byte, MaxUploadBytes+10)
	_, err := Process(bytes.NewReader(big), DefaultOptions)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
