package imgio

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/quadart/pkg/errors"
)

// Format names a raster output encoding.
type Format string

// Supported raster formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatGIF  Format = "gif"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

var imagingFormats = map[Format]imaging.Format{
	FormatPNG:  imaging.PNG,
	FormatJPEG: imaging.JPEG,
	FormatGIF:  imaging.GIF,
	FormatTIFF: imaging.TIFF,
	FormatBMP:  imaging.BMP,
}

var contentTypes = map[Format]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatGIF:  "image/gif",
	FormatTIFF: "image/tiff",
	FormatBMP:  "image/bmp",
}

// ParseFormat parses a format name or file extension ("png", ".JPG", "tif").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported image format: %q (must be png, jpg, gif, tiff or bmp)", s)
	}
}

// FormatFromPath picks the format from path's extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) String() string { return string(f) }

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// FileSink encodes with disintegration/imaging.
type FileSink struct {
	// JPEGQuality is used for JPEG output (1-100). Zero means 95.
	JPEGQuality int
}

// NewFileSink returns a sink with default encoder settings.
func NewFileSink() *FileSink {
	return &FileSink{JPEGQuality: 95}
}

func (s *FileSink) options() []imaging.EncodeOption {
	q := s.JPEGQuality
	if q <= 0 || q > 100 {
		q = 95
	}
	return []imaging.EncodeOption{
		imaging.JPEGQuality(q),
		imaging.PNGCompressionLevel(png.BestSpeed),
	}
}

// Save encodes img in the format named by path's extension and writes it
// with [WriteFile].
func (s *FileSink) Save(img image.Image, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "save %s", path)
	}
	var buf bytes.Buffer
	if err := s.Encode(&buf, img, f); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// Encode writes img to w in format f.
func (s *FileSink) Encode(w io.Writer, img image.Image, f Format) error {
	imgFormat, ok := imagingFormats[f]
	if !ok {
		return errors.New(errors.ErrCodeSinkWrite, "unsupported image format: %q", string(f))
	}
	if err := imaging.Encode(w, img, imgFormat, s.options()...); err != nil {
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "encode %s", f)
	}
	return nil
}

// WriteFile writes data to path. The bytes go to a temporary file in the
// same directory that is renamed into place, so a failure never leaves a
// partial file at path.
func WriteFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "write %s", path)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".quadart-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "write %s", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "write %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "write %s", path)
	}
	return nil
}
