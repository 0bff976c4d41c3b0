// Package imagepipe prepares user-selected images for upload: it gates on
// type and raw size, decodes, shrinks into a bounding box, and re-encodes at
// decreasing JPEG quality until the payload fits under the transport ceiling.
package imagepipe

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"

	"auction-client/internal/auctionerrors"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadBytes is the hard ceiling on both the raw input file and the
	// re-encoded payload (2 MiB).
	MaxUploadBytes = 2 << 20

	// MaxDimension bounds both sides of the output raster. Images already
	// inside the box are never enlarged.
	MaxDimension = 800

	// StartQuality and QualityFloor bound the re-encode loop. Stepping down
	// by qualityStep from start to floor caps the loop at 7 encode attempts.
	StartQuality = 70
	QualityFloor = 10

	qualityStep = 10
)

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// CompressedImage is the upload-ready payload produced by Accept. It exists
// only between file selection and form submission.
type CompressedImage struct {
	Data    []byte
	Quality int
	Width   int
	Height  int
}

// Accept runs the full pipeline on a raw file. An empty contentType is
// sniffed from the payload. The result never exceeds MaxUploadBytes unless
// quality already hit the floor, in which case the best-effort encoding is
// returned rather than looping forever.
func Accept(data []byte, contentType string) (*CompressedImage, error) {
	return accept(data, contentType, MaxUploadBytes)
}

func accept(data []byte, contentType string, maxBytes int) (*CompressedImage, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if _, ok := allowedTypes[contentType]; !ok {
		return nil, fmt.Errorf("imagepipe: %q: %w", contentType, auctionerrors.ErrImageType)
	}
	if len(data) > maxBytes {
		return nil, fmt.Errorf("imagepipe: %d bytes: %w", len(data), auctionerrors.ErrImageTooLarge)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		// Malformed local file, not a transport problem; reported, never retried.
		return nil, fmt.Errorf("imagepipe: %w: %v", auctionerrors.ErrImageDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	quality := StartQuality
	for {
		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("imagepipe: encode at quality %d: %w", quality, err)
		}
		if buf.Len() <= maxBytes || quality <= QualityFloor {
			break
		}
		quality -= qualityStep
	}

	return &CompressedImage{
		Data:    append([]byte(nil), buf.Bytes()...),
		Quality: quality,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}, nil
}

// DataURI renders the payload in the self-describing MIME-prefixed base64
// form embedded in create/update request bodies.
func (c *CompressedImage) DataURI() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(c.Data)
}
