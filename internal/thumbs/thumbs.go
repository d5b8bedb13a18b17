// Package thumbs maintains a JPEG thumbnail cache for the car library.
// Thumbnails are generated lazily and keyed by source name and target
// width, so a width change in config never serves stale sizes.
package thumbs

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	// Register decoders for the supported library formats.
	_ "image/png"
)

const jpegQuality = 85

// Cache generates and stores thumbnails under a single directory.
type Cache struct {
	dir   string
	width int
}

// NewCache creates a thumbnail cache writing to dir at the given width.
func NewCache(dir string, width int) *Cache {
	return &Cache{dir: dir, width: width}
}

// Path returns the cache location for a source image, without generating it.
func (c *Cache) Path(srcPath string) string {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.dir, fmt.Sprintf("%s_%dpx.jpg", stem, c.width))
}

// Ensure returns the thumbnail path for srcPath, generating it if the
// cached copy is missing or older than the source image.
func (c *Cache) Ensure(srcPath string) (string, error) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return "", fmt.Errorf("stat source image: %w", err)
	}

	dst := c.Path(srcPath)
	if dstInfo, err := os.Stat(dst); err == nil && !dstInfo.ModTime().Before(srcInfo.ModTime()) {
		return dst, nil
	}

	if err := c.generate(srcPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (c *Cache) generate(srcPath, dst string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(srcPath), err)
	}

	scaled := scaleToWidth(src, c.width)

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create thumbnail dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".thumb-*")
	if err != nil {
		return fmt.Errorf("create temp thumbnail: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := jpeg.Encode(tmp, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp thumbnail: %w", err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("move thumbnail into place: %w", err)
	}
	return nil
}

// scaleToWidth downsamples src to the target width, preserving aspect
// ratio. Images at or below the target width pass through untouched.
func scaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() <= width {
		return src
	}

	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
