package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// Format returns the output format implied by path's extension. An empty
// or unknown extension yields svg.
func Format(path string) string {
	switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext {
	case FormatPDF, FormatPNG, FormatDOT:
		return ext
	case "gv":
		return FormatDOT
	}
	return FormatSVG
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, FormatPDF)
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(svg, FormatPNG, "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
