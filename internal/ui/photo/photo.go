// Package photo renders car photos in the terminal using Unicode half
// blocks. Each cell carries two pixels: the upper one as foreground,
// the lower one as background, which roughly squares the cell aspect.
package photo

import (
	"fmt"
	"image"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/image/draw"

	_ "image/jpeg"
	_ "image/png"
)

// RenderFile loads an image from disk and renders it to fit the given
// cell bounds.
func RenderFile(path string, maxCols, maxRows int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}
	return Render(img, maxCols, maxRows), nil
}

// Render scales img to fit maxCols x maxRows terminal cells and draws
// it with half blocks.
func Render(img image.Image, maxCols, maxRows int) string {
	if maxCols < 1 || maxRows < 1 {
		return ""
	}

	cols, rows := fitCells(img.Bounds(), maxCols, maxRows)
	px := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.CatmullRom.Scale(px, px.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := hexColor(px.At(col, row*2))
			bottom := hexColor(px.At(col, row*2+1))
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀")
			b.WriteString(cell)
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// fitCells computes the cell grid that fits the image into the bounds
// while preserving aspect ratio. One cell is one pixel wide and two
// pixels tall.
func fitCells(b image.Rectangle, maxCols, maxRows int) (cols, rows int) {
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 1, 1
	}

	maxH := maxRows * 2
	cols = maxCols
	pxH := h * cols / w
	if pxH > maxH {
		pxH = maxH
		cols = w * pxH / h
	}

	rows = pxH / 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func hexColor(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
