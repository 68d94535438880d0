// Package photo превращает загруженное изображение в data URL для превью.
package photo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/employee-records/internal/domain"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Options задаёт ограничения на входной файл и размер превью
type Options struct {
	MaxBytes     int64
	MaxDimension int
	Quality      int
}

// DefaultOptions - ограничения по умолчанию
var DefaultOptions = Options{
	MaxBytes:     5 << 20,
	MaxDimension: 512,
	Quality:      85,
}

// Encode читает изображение и возвращает data URL.
// Декодируемые изображения уменьшаются до MaxDimension и перекодируются в JPEG;
// остальные форматы изображений сохраняются как есть.
func Encode(r io.Reader, opts Options) (string, error) {
	opts = withDefaults(opts)

	data, err := io.ReadAll(io.LimitReader(r, opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return "", domain.ErrEmptyPhoto
	}
	if int64(len(data)) > opts.MaxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", domain.ErrPhotoTooLarge, opts.MaxBytes)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", domain.ErrNotAnImage, mtype.String())
	}

	preview, err := downscale(data, opts)
	if err != nil {
		// svg, bmp и прочие форматы без декодера сохраняем без обработки
		return DataURL(mtype.String(), data), nil
	}
	return DataURL("image/jpeg", preview), nil
}

// EncodeDataURL пропускает присланный клиентом data URL через те же проверки,
// что и Encode: лимит размера, определение типа и уменьшение.
func EncodeDataURL(dataURL string, opts Options) (string, error) {
	rest, found := strings.CutPrefix(dataURL, "data:")
	if !found {
		return "", domain.ErrInvalidDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", domain.ErrInvalidDataURL
	}

	url, err := Encode(base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload)), opts)
	var corrupt base64.CorruptInputError
	if errors.As(err, &corrupt) {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidDataURL, err)
	}
	return url, err
}

// DataURL кодирует данные в data URL с base64
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func downscale(data []byte, opts Options) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := fit(bounds.Dx(), bounds.Dy(), opts.MaxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// белый фон вместо чёрного для прозрачных PNG/GIF
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit уменьшает размеры с сохранением пропорций; меньшие изображения не увеличиваются
func fit(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}

func withDefaults(opts Options) Options {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultOptions.MaxBytes
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = DefaultOptions.MaxDimension
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultOptions.Quality
	}
	return opts
}
