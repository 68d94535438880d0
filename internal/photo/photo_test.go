package photo

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/employee-records/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURL(t *testing.T, url string) (string, []byte) {
	t.Helper()
	require.True(t, strings.HasPrefix(url, "data:"))
	header, payload, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ";base64,")
	require.True(t, ok)
	data, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	return header, data
}

func TestEncode_DownscalesToJPEG(t *testing.T) {
	url, err := Encode(bytes.NewReader(pngBytes(t, 400, 200)), Options{MaxDimension: 100})
	require.NoError(t, err)

	mediaType, data := decodeDataURL(t, url)
	assert.Equal(t, "image/jpeg", mediaType)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestEncode_SmallImageKeepsSize(t *testing.T) {
	url, err := Encode(bytes.NewReader(pngBytes(t, 20, 30)), Options{MaxDimension: 100})
	require.NoError(t, err)

	_, data := decodeDataURL(t, url)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestEncode_RejectsNonImage(t *testing.T) {
	_, err := Encode(strings.NewReader("%PDF-1.4 not a photo"), DefaultOptions)
	assert.ErrorIs(t, err, domain.ErrNotAnImage)
}

func TestEncode_RejectsTooLarge(t *testing.T) {
	data := pngBytes(t, 64, 64)
	_, err := Encode(bytes.NewReader(data), Options{MaxBytes: int64(len(data) - 1)})
	assert.ErrorIs(t, err, domain.ErrPhotoTooLarge)
}

func TestEncode_RejectsEmpty(t *testing.T) {
	_, err := Encode(bytes.NewReader(nil), DefaultOptions)
	assert.ErrorIs(t, err, domain.ErrEmptyPhoto)
}

func TestEncode_UndecodableImageStoredAsIs(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)

	url, err := Encode(bytes.NewReader(svg), DefaultOptions)
	require.NoError(t, err)

	mediaType, data := decodeDataURL(t, url)
	assert.Equal(t, "image/svg+xml", mediaType)
	assert.Equal(t, svg, data)
}

func TestFit(t *testing.T) {
	w, h := fit(1000, 10, 100)
	assert.Equal(t, 100, w)
	assert.Equal(t, 1, h)

	w, h = fit(300, 600, 150)
	assert.Equal(t, 75, w)
	assert.Equal(t, 150, h)
}

func TestEncodeDataURL_AppliesLimits(t *testing.T) {
	url, err := EncodeDataURL(DataURL("image/png", pngBytes(t, 400, 200)), Options{MaxDimension: 100})
	require.NoError(t, err)

	mediaType, data := decodeDataURL(t, url)
	assert.Equal(t, "image/jpeg", mediaType)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)

	zeros := make([]byte, 4096)
	_, err = EncodeDataURL(DataURL("image/png", zeros), Options{MaxBytes: 1024})
	assert.ErrorIs(t, err, domain.ErrPhotoTooLarge)

	_, err = EncodeDataURL(DataURL("image/png", []byte("plain text")), DefaultOptions)
	assert.ErrorIs(t, err, domain.ErrNotAnImage)

	_, err = EncodeDataURL("data:image/png;base64,", DefaultOptions)
	assert.ErrorIs(t, err, domain.ErrEmptyPhoto)
}

func TestEncodeDataURL_Malformed(t *testing.T) {
	for _, url := range []string{
		"image/png;base64,AAAA",
		"data:image/png,AAAA",
		"data:image/png;base64",
		"data:image/png;base64,@@@@",
	} {
		_, err := EncodeDataURL(url, DefaultOptions)
		assert.ErrorIs(t, err, domain.ErrInvalidDataURL, url)
	}
}
