// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package image

import (
	"bytes"
	stdimage "image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width int, height int) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	img, format, err := stdimage.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy(), format
}

func TestCompressScalesDown(t *testing.T) {
	out, err := Compress(pngBytes(t, 1600, 1200), 800, 600, 80)
	require.NoError(t, err)

	width, height, format := decodeDims(t, out)
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)
	assert.Equal(t, "jpeg", format)
}

func TestCompressFitsTallImage(t *testing.T) {
	out, err := Compress(pngBytes(t, 600, 1200), 800, 600, 80)
	require.NoError(t, err)

	width, height, _ := decodeDims(t, out)
	assert.Equal(t, 300, width)
	assert.Equal(t, 600, height)
}

func TestCompressNoUpscale(t *testing.T) {
	out, err := Compress(pngBytes(t, 100, 50), 800, 600, 80)
	require.NoError(t, err)

	width, height, format := decodeDims(t, out)
	assert.Equal(t, 100, width)
	assert.Equal(t, 50, height)
	assert.Equal(t, "jpeg", format)
}

func TestCompressInvalidInput(t *testing.T) {
	_, err := Compress([]byte("not an image"), 800, 600, 80)
	assert.Error(t, err)
}
