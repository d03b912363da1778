package sink

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/matzehuels/filmina/pkg/errors"
)

// DataURIPrefix starts every PNG data URI produced by DataURI.
const DataURIPrefix = "data:image/png;base64,"

// PNG encodes img as PNG.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// DataURI wraps PNG bytes in a base64 data URI.
func DataURI(pngData []byte) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(pngData)
}

// DecodeDataURI decodes a PNG data URI. Failures carry DECODE_FAILED.
func DecodeDataURI(uri string) (image.Image, error) {
	data, ok := strings.CutPrefix(uri, DataURIPrefix)
	if !ok {
		return nil, errors.New(errors.ErrCodeDecodeFailed, "not a png data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode base64 payload")
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode png")
	}
	return img, nil
}
