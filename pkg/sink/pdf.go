package sink

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/filmina/pkg/errors"
)

// PDF writes pages as a landscape document with one page per image. Every
// page is width×height points and the image is stretched to fill it.
func PDF(w io.Writer, pages []image.Image, width, height float64) error {
	if len(pages) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pdf needs at least one page")
	}
	if width <= 0 || height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid page size %gx%g", width, height)
	}

	// fpdf swaps the custom size for landscape documents.
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: height, Ht: width},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("filmina", true)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, page := range pages {
		data, err := PNG(page)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("slide-%d", i+1)
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		doc.AddPage()
		doc.ImageOptions(name, 0, 0, width, height, false, opts, 0, "")
	}
	if err := doc.Output(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return nil
}
