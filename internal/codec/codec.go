// Package codec selects image encoders by file extension and wraps the image
// registry for decoding.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format identifies an output encoder.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
	BMP  Format = "bmp"
)

// DefaultJPEGQuality is used when Options.JPEGQuality is zero.
const DefaultJPEGQuality = 90

// ErrUnsupportedFormat is returned when a file extension has no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// OpenPatterns lists the glob patterns offered when opening files.
var OpenPatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp"}

// SaveFilter describes one entry of the save-as filter list.
type SaveFilter struct {
	Label      string
	Extensions []string
	Format     Format
}

// SaveFilters lists the formats images can be written as.
var SaveFilters = []SaveFilter{
	{Label: "JPG Files", Extensions: []string{".jpg", ".jpeg"}, Format: JPEG},
	{Label: "PNG file", Extensions: []string{".png"}, Format: PNG},
	{Label: "GIF File", Extensions: []string{".gif"}, Format: GIF},
	{Label: "BMP File", Extensions: []string{".bmp"}, Format: BMP},
}

// Options tunes encoding.
type Options struct {
	JPEGQuality int
}

// AcceptsOpen reports whether path matches one of OpenPatterns.
func AcceptsOpen(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, pattern := range OpenPatterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// FormatFor returns the encoder implied by the extension of path.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range SaveFilters {
		for _, e := range f.Extensions {
			if e == ext {
				return f.Format, nil
			}
		}
	}
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// Decode reads an image from r using the registered decoders.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// ReadFile decodes the image stored at path and reports the decoder name.
func ReadFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := Decode(f)
	closeErr := f.Close()
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	if closeErr != nil {
		return nil, "", closeErr
	}
	return img, format, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts Options) error {
	switch format {
	case JPEG:
		q := opts.JPEGQuality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case PNG:
		return png.Encode(w, img)
	case GIF:
		return gif.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// WriteFile encodes img to path using the format implied by its extension.
// Data is written to a temporary file in the same directory and renamed into
// place, so a failed write leaves no partial file behind.
func WriteFile(path string, img image.Image, opts Options) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	tmp, err := createTemp(path)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := Encode(tmp, img, format, opts); err != nil {
		closeWithLog(tmpPath, tmp)
		removeWithLog(tmpPath)
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		removeWithLog(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		removeWithLog(tmpPath)
		return err
	}
	return nil
}

// createTemp opens a fresh file next to path. It takes the mode of an
// existing regular file at path, otherwise 0666 filtered by the umask.
func createTemp(path string) (*os.File, error) {
	perm, keep := os.FileMode(0o666), false
	if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
		perm, keep = st.Mode().Perm(), true
	}
	dir, base := filepath.Dir(path), filepath.Base(path)
	for i := 0; i < 100; i++ {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(uint64(rand.Uint32()), 10)+".tmp")
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if keep {
			if err := f.Chmod(perm); err != nil {
				log.Printf("%s: chmod: %v", name, err)
			}
		}
		return f, nil
	}
	return nil, fmt.Errorf("create temporary file for %s: too many collisions", path)
}

func closeWithLog(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("%s: close: %v", name, err)
	}
}

func removeWithLog(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("remove %s: %v", path, err)
	}
}
