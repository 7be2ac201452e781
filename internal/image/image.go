// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	_ "image/gif" // decoder
	"image/jpeg"
	_ "image/png" // decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // decoder
)

// Compress re-encodes an image as JPEG with the given quality, scaling it
// down to fit within maxWidth x maxHeight. Images already within the bounds
// are never enlarged, only re-encoded.
func Compress(data []byte, maxWidth int, maxHeight int, quality int) ([]byte, error) {
	src, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: decoding image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		scale := float64(maxWidth) / float64(width)
		if s := float64(maxHeight) / float64(height); s < scale {
			scale = s
		}
		dstWidth := max(int(float64(width)*scale+0.5), 1)
		dstHeight := max(int(float64(height)*scale+0.5), 1)
		dst := stdimage.NewRGBA(stdimage.Rect(0, 0, dstWidth, dstHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("image: encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
