package dash2pdf

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pointsPerCSSPixel converts CSS pixels (1/96 in) to PDF points (1/72 in).
const pointsPerCSSPixel = 72.0 / 96.0

// pageSizeTolerance absorbs Chrome's rounding of paper sizes, in points.
const pageSizeTolerance = 2.0

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	api.DisableConfigDir()
}

// pdfInfo summarizes a rendered PDF.
type pdfInfo struct {
	Pages  int
	Width  float64 // First page, points
	Height float64 // First page, points
}

// Matches reports whether the first page has the size of dims.
func (i pdfInfo) Matches(dims Dimensions) bool {
	return math.Abs(i.Width-float64(dims.Width)*pointsPerCSSPixel) <= pageSizeTolerance &&
		math.Abs(i.Height-float64(dims.Height)*pointsPerCSSPixel) <= pageSizeTolerance
}

var errNoPages = errors.New("document has no pages")

// inspectPDF parses data and reads the page geometry.
func inspectPDF(data []byte) (pdfInfo, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		return pdfInfo{}, fmt.Errorf("reading PDF: %w", err)
	}
	if len(dims) == 0 {
		return pdfInfo{}, errNoPages
	}
	return pdfInfo{
		Pages:  len(dims),
		Width:  dims[0].Width,
		Height: dims[0].Height,
	}, nil
}
