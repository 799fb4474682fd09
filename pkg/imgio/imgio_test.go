package imgio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/quadart/pkg/errors"
)

func fourColor(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{A: 255}
			if x < w/2 {
				c.R = 200
			} else {
				c.B = 200
			}
			if y >= h/2 {
				c.G = 100
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	img := fourColor(6, 4)
	src := FromImage(img)

	if src.Width() != 6 || src.Height() != 4 {
		t.Fatalf("size = %dx%d, want 6x4", src.Width(), src.Height())
	}
	if got := src.RGBA(0, 0); got != (color.RGBA{R: 200, A: 255}) {
		t.Errorf("RGBA(0,0) = %v", got)
	}
	if got := src.RGBA(5, 3); got != (color.RGBA{G: 100, B: 200, A: 255}) {
		t.Errorf("RGBA(5,3) = %v", got)
	}

	// Later writes to the original must not show through.
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	if got := src.RGBA(0, 0); got.R != 200 {
		t.Errorf("source shares pixels with input image")
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	img.SetNRGBA(10, 10, color.NRGBA{R: 9, A: 255})
	src := FromImage(img)
	if src.Width() != 3 || src.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", src.Width(), src.Height())
	}
	if got := src.RGBA(0, 0); got.R != 9 {
		t.Errorf("RGBA(0,0).R = %d, want 9", got.R)
	}
}

func TestDecodeBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, fourColor(8, 8)); err != nil {
		t.Fatal(err)
	}
	src, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if src.Width() != 8 || src.Height() != 8 {
		t.Errorf("size = %dx%d, want 8x8", src.Width(), src.Height())
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes(tt.data)
			if !errors.Is(err, errors.ErrCodeInvalidSource) {
				t.Errorf("err = %v, want INVALID_SOURCE", err)
			}
		})
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("err = %v, want INVALID_SOURCE", err)
	}
}

func TestFit(t *testing.T) {
	src := FromImage(fourColor(400, 200))

	if got := Fit(src, 0); got != src {
		t.Error("Fit(0) should return the source unchanged")
	}
	if got := Fit(src, 500); got != src {
		t.Error("Fit larger than image should return the source unchanged")
	}

	got := Fit(src, 100)
	if got.Width() != 100 || got.Height() != 50 {
		t.Errorf("Fit(100) = %dx%d, want 100x50", got.Width(), got.Height())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"jpeg", FormatJPEG, false},
		{".jpg", FormatJPEG, false},
		{"tif", FormatTIFF, false},
		{"gif", FormatGIF, false},
		{"bmp", FormatBMP, false},
		{"webp", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink()
	img := fourColor(10, 6)

	for _, name := range []string{"out.png", "out.bmp", "out.tiff", "out.gif"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := sink.Save(img, path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			src, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if src.Width() != 10 || src.Height() != 6 {
				t.Errorf("size = %dx%d, want 10x6", src.Width(), src.Height())
			}
		})
	}
}

func TestFileSinkErrors(t *testing.T) {
	sink := NewFileSink()
	img := fourColor(2, 2)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"no extension", filepath.Join(dir, "out")},
		{"unknown extension", filepath.Join(dir, "out.xyz")},
		{"missing directory", filepath.Join(dir, "nope", "out.png")},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sink.Save(img, tt.path)
			if !errors.Is(err, errors.ErrCodeSinkWrite) {
				t.Errorf("err = %v, want SINK_WRITE_FAILURE", err)
			}
		})
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed saves left %d files behind", len(entries))
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewFileSink().Encode(&buf, fourColor(2, 2), Format("webp"))
	if !errors.Is(err, errors.ErrCodeSinkWrite) {
		t.Errorf("err = %v, want SINK_WRITE_FAILURE", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := WriteFile(path, []byte("<svg/>")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{
		"",
		filepath.Join(dir, "out"),
		filepath.Join(dir, "nope", "out.svg"),
		dir + string(filepath.Separator),
	} {
		if err := WriteFile(path, []byte("<svg/>")); !errors.Is(err, errors.ErrCodeSinkWrite) {
			t.Errorf("WriteFile(%q) = %v, want SINK_WRITE_FAILURE", path, err)
		}
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("failed writes left %d files behind", len(entries))
	}
}

func TestSaveMatchesEncode(t *testing.T) {
	sink := NewFileSink()
	img := fourColor(4, 4)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := sink.Save(img, path); err != nil {
		t.Fatal(err)
	}
	var want bytes.Buffer
	if err := sink.Encode(&want, img, FormatPNG); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Error("Save wrote different bytes than Encode produced")
	}
}
