package service

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/storage"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register the WebP decoder
)

const (
	DefaultMaxUploadBytes = 5 * 1024 * 1024
	DefaultMaxWidth       = 1920
	DefaultMaxHeight      = 1920
	jpegQuality           = 85
	webpQuality           = 85
)

// allowedExtensions maps the accepted file extensions to the decoded
// format name image.Decode reports for them.
var allowedExtensions = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".webp": "webp",
}

// ImageService validates, downscales, and stores uploaded images. Files
// are written through a FileStore so tests never touch the real upload
// directory.
type ImageService struct {
	store     storage.FileStore
	maxBytes  int64
	maxWidth  int
	maxHeight int
}

func NewImageService(store storage.FileStore, maxBytes int64, maxWidth, maxHeight int) *ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	return &ImageService{
		store:     store,
		maxBytes:  maxBytes,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
}

// Save validates the upload, downscales it to fit the configured bounds,
// and writes it under a unique filename built from the prefix. The
// returned filename is what gets stored on the post or user row.
func (s *ImageService) Save(prefix, originalName string, data []byte) (string, error) {
	filename, err := s.save(prefix, originalName, data)
	if err != nil {
		middleware.ImageUploads.WithLabelValues("rejected").Inc()
		return "", err
	}
	middleware.ImageUploads.WithLabelValues("accepted").Inc()
	return filename, nil
}

func (s *ImageService) save(prefix, originalName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(data)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	expectedFormat, ok := allowedExtensions[ext]
	if !ok {
		return "", models.NewValidationError("Unsupported file type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", models.NewValidationError("File is not a valid image")
	}
	// The extension and the sniffed content must agree; a PNG renamed to
	// .jpg is rejected rather than silently re-labelled.
	if format != expectedFormat {
		return "", models.NewValidationError("File extension does not match image content")
	}

	resized := s.downscale(decoded)

	encoded, err := encodeImage(resized, format)
	if err != nil {
		return "", models.NewProcessingError(err)
	}

	filename := buildFilename(prefix, ext)
	if _, err := s.store.Write(filename, encoded); err != nil {
		return "", models.NewStorageError(err)
	}
	return filename, nil
}

// Delete removes a stored image. Deleting an absent or empty filename is a
// no-op so cleanup paths can call it unconditionally.
func (s *ImageService) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	if _, err := s.store.Delete(filename); err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// downscale shrinks the image to fit within the configured bounds while
// preserving aspect ratio. Images already inside the bounds pass through
// untouched; nothing is ever upscaled.
func (s *ImageService) downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := 1.0
	if ratio := float64(s.maxWidth) / float64(w); ratio < scale {
		scale = ratio
	}
	if ratio := float64(s.maxHeight) / float64(h); ratio < scale {
		scale = ratio
	}
	if scale >= 1.0 {
		return src
	}

	rect := image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale))

	// GIFs decode as paletted images and must stay paletted: scaling
	// through RGBA leaves re-quantization to the encoder's default
	// palette, which has no transparent entry.
	if p, ok := src.(*image.Paletted); ok {
		dst := image.NewPaletted(rect, p.Palette)
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		return dst
	}

	dst := image.NewRGBA(rect)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "webp":
		err = webp.Encode(&buf, img, &webp.Options{Quality: webpQuality})
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildFilename yields prefix_uuid_timestamp.ext, unique without any
// coordination between concurrent uploads.
func buildFilename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s_%d%s", prefix, uuid.NewString(), time.Now().UnixNano(), ext)
}
