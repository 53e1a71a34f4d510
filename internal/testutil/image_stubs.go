// Package testutil provides shared test doubles and fixtures.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/chai2010/webp"
)

// failer is the subset of *testing.T the fixture helpers need.
type failer interface {
	Helper()
	Fatalf(string, ...any)
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t failer, w, h int) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, testImage(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// TinyJPEG returns an in-memory JPEG byte slice with the requested dimensions.
func TinyJPEG(t failer, w, h int) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, testImage(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// TinyGIF returns an in-memory GIF byte slice with the requested dimensions.
func TinyGIF(t failer, w, h int) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := gif.Encode(buf, testImage(w, h), nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

// TinyTransparentGIF returns a GIF whose left half is fully transparent
// and whose right half is opaque.
func TinyTransparentGIF(t failer, w, h int) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{
		color.RGBA{},
		color.RGBA{R: 200, A: 255},
		color.RGBA{G: 200, A: 255},
	})
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetColorIndex(x, y, 1)
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := gif.Encode(buf, img, nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

// TinyWebP returns an in-memory WebP byte slice with the requested dimensions.
func TinyWebP(t failer, w, h int) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, testImage(w, h), &webp.Options{Quality: 90}); err != nil {
		t.Fatalf("encode webp: %v", err)
	}
	return buf.Bytes()
}

// MemStore is an in-memory FileStore implementation for tests.
type MemStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemStore creates an empty in-memory file store.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

// Write stores data under the filename and returns the filename as its path.
func (s *MemStore) Write(filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filename] = append([]byte(nil), data...)
	return filename, nil
}

// Delete removes the file; removing an absent file reports false.
func (s *MemStore) Delete(filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[filename]; !ok {
		return false, nil
	}
	delete(s.files, filename)
	return true, nil
}

// Exists reports whether the file is present.
func (s *MemStore) Exists(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[filename]
	return ok
}

// Get returns the stored bytes, or nil when absent.
func (s *MemStore) Get(filename string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[filename]
}

// Len reports the number of stored files.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
