package ocr

import (
	"bytes"
	"compress/zlib"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/vellum/core"
)

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("compress: %v", err)
	}
	w.Close()
	return buf.Bytes()
}

func grayAt(t *testing.T, pngData []byte, x, y int) uint8 {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestEncodeGrayImage(t *testing.T) {
	s := &core.Stream{
		Dict: core.Dict{
			"Subtype":          core.Name("Image"),
			"Width":            core.Int(2),
			"Height":           core.Int(2),
			"BitsPerComponent": core.Int(8),
			"ColorSpace":       core.Name("DeviceGray"),
			"Filter":           core.Name("FlateDecode"),
		},
		Data: deflate(t, []byte{0, 85, 170, 255}),
	}
	out, err := EncodeImage(s, nil)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if got := grayAt(t, out, 0, 0); got != 0 {
		t.Errorf("pixel (0,0) = %d, want 0", got)
	}
	if got := grayAt(t, out, 1, 1); got != 255 {
		t.Errorf("pixel (1,1) = %d, want 255", got)
	}
}

func TestEncodeOneBitImage(t *testing.T) {
	// four pixels packed in one byte: 1 0 1 0
	s := &core.Stream{
		Dict: core.Dict{
			"Width":            core.Int(4),
			"Height":           core.Int(1),
			"BitsPerComponent": core.Int(1),
			"ColorSpace":       core.Name("DeviceGray"),
		},
		Data: []byte{0xA0},
	}
	out, err := EncodeImage(s, nil)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if got := grayAt(t, out, 0, 0); got != 255 {
		t.Errorf("pixel (0,0) = %d, want white", got)
	}
	if got := grayAt(t, out, 1, 0); got != 0 {
		t.Errorf("pixel (1,0) = %d, want black", got)
	}
}

func TestEncodeStencilMaskInverted(t *testing.T) {
	s := &core.Stream{
		Dict: core.Dict{
			"Width":     core.Int(4),
			"Height":    core.Int(1),
			"ImageMask": core.Bool(true),
			"Decode":    core.Array{core.Int(1), core.Int(0)},
		},
		Data: []byte{0xA0},
	}
	out, err := EncodeImage(s, nil)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if got := grayAt(t, out, 0, 0); got != 0 {
		t.Errorf("pixel (0,0) = %d, want black after Decode flip", got)
	}
	if got := grayAt(t, out, 1, 0); got != 255 {
		t.Errorf("pixel (1,0) = %d, want white after Decode flip", got)
	}
}

func TestEncodeRGBImage(t *testing.T) {
	s := &core.Stream{
		Dict: core.Dict{
			"Width":            core.Int(1),
			"Height":           core.Int(1),
			"BitsPerComponent": core.Int(8),
			"ColorSpace":       core.Name("DeviceRGB"),
		},
		Data: []byte{255, 0, 0},
	}
	out, err := EncodeImage(s, nil)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}
}

func TestJPEGPassesThroughCompressed(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	s := &core.Stream{
		Dict: core.Dict{
			"Width":  core.Int(10),
			"Height": core.Int(10),
			"Filter": core.Name("DCTDecode"),
		},
		Data: jpeg,
	}
	out, err := EncodeImage(s, nil)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if !bytes.Equal(out, jpeg) {
		t.Error("DCTDecode data was not passed through unchanged")
	}
}

func TestUnsupportedColorSpace(t *testing.T) {
	s := &core.Stream{
		Dict: core.Dict{
			"Width":            core.Int(1),
			"Height":           core.Int(1),
			"BitsPerComponent": core.Int(8),
			"ColorSpace":       core.Name("DeviceCMYK"),
		},
		Data: []byte{0, 0, 0, 0},
	}
	if _, err := EncodeImage(s, nil); err == nil {
		t.Error("expected error for DeviceCMYK")
	}
}

func TestTruncatedSamples(t *testing.T) {
	s := &core.Stream{
		Dict: core.Dict{
			"Width":            core.Int(10),
			"Height":           core.Int(10),
			"BitsPerComponent": core.Int(8),
			"ColorSpace":       core.Name("DeviceGray"),
		},
		Data: []byte{1, 2, 3},
	}
	if _, err := EncodeImage(s, nil); err == nil {
		t.Error("expected error for truncated sample data")
	}
}
