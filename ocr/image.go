package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/tsawler/vellum/core"
)

// EncodeImage converts an image XObject stream into encoded bytes that
// Tesseract accepts. JPEG streams (DCTDecode) pass through compressed;
// everything else is rebuilt from the decoded samples and written as
// PNG. Indirect dictionary entries are resolved through r, which may be
// nil for direct objects.
func EncodeImage(s *core.Stream, r core.Resolver) ([]byte, error) {
	data, err := s.Decoded()
	if err != nil {
		var missing *core.MissingCodecError
		if errors.As(err, &missing) && missing.Filter == "DCTDecode" {
			return missing.Data, nil
		}
		return nil, err
	}

	width, ok := dictInt(s.Dict, "Width", r)
	if !ok || width <= 0 {
		return nil, fmt.Errorf("image has no usable Width")
	}
	height, ok := dictInt(s.Dict, "Height", r)
	if !ok || height <= 0 {
		return nil, fmt.Errorf("image has no usable Height")
	}

	bpc, comps, err := sampleLayout(s.Dict, r)
	if err != nil {
		return nil, err
	}

	var img image.Image
	switch comps {
	case 1:
		img, err = grayImage(data, width, height, bpc, invertedDecode(s.Dict, r))
	case 3:
		img, err = rgbImage(data, width, height, bpc)
	default:
		err = fmt.Errorf("unsupported color space with %d components", comps)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// RecognizeStream runs OCR over an image XObject stream.
func (c *Client) RecognizeStream(s *core.Stream, r core.Resolver) (string, error) {
	encoded, err := EncodeImage(s, r)
	if err != nil {
		return "", err
	}
	return c.RecognizeImage(encoded)
}

// sampleLayout determines bits per component and component count from
// the image dictionary. Stencil masks are one-bit single-component.
func sampleLayout(dict core.Dict, r core.Resolver) (bpc, comps int, err error) {
	if mask, ok := core.Resolve(dict.Get("ImageMask"), r).(core.Bool); ok && bool(mask) {
		return 1, 1, nil
	}

	bpc = 8
	if v, ok := dictInt(dict, "BitsPerComponent", r); ok {
		bpc = v
	}
	switch bpc {
	case 1, 2, 4, 8, 16:
	default:
		return 0, 0, fmt.Errorf("unsupported BitsPerComponent %d", bpc)
	}

	comps, err = colorComponents(core.Resolve(dict.Get("ColorSpace"), r), r)
	return bpc, comps, err
}

func colorComponents(cs core.Object, r core.Resolver) (int, error) {
	switch obj := cs.(type) {
	case core.Name:
		switch obj {
		case "DeviceGray", "CalGray", "G":
			return 1, nil
		case "DeviceRGB", "CalRGB", "RGB":
			return 3, nil
		default:
			return 0, fmt.Errorf("unsupported color space %s", obj)
		}
	case core.Array:
		if len(obj) >= 2 {
			if name, ok := obj[0].(core.Name); ok && name == "ICCBased" {
				if st, ok := core.Resolve(obj[1], r).(*core.Stream); ok {
					if n, ok := dictInt(st.Dict, "N", r); ok {
						return n, nil
					}
				}
			}
		}
		return 0, fmt.Errorf("unsupported color space array")
	}
	return 0, fmt.Errorf("image has no usable ColorSpace")
}

// invertedDecode reports whether a [1 0] Decode entry flips the
// samples, common on stencil masks.
func invertedDecode(dict core.Dict, r core.Resolver) bool {
	arr, ok := core.Resolve(dict.Get("Decode"), r).(core.Array)
	if !ok || len(arr) < 2 {
		return false
	}
	lo, okLo := core.Resolve(arr[0], r).(core.Int)
	hi, okHi := core.Resolve(arr[1], r).(core.Int)
	return okLo && okHi && lo == 1 && hi == 0
}

func grayImage(data []byte, width, height, bpc int, invert bool) (image.Image, error) {
	stride := (width*bpc + 7) / 8
	if len(data) < stride*height {
		return nil, fmt.Errorf("image data truncated: %d bytes for %dx%d at %d bpc", len(data), width, height, bpc)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	maxVal := (1 << bpc) - 1
	if bpc == 16 {
		maxVal = 255
	}
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			v := sampleAt(row, x, bpc)
			if invert {
				v = maxVal - v
			}
			img.Pix[y*img.Stride+x] = uint8(v * 255 / maxVal)
		}
	}
	return img, nil
}

func rgbImage(data []byte, width, height, bpc int) (image.Image, error) {
	if bpc != 8 && bpc != 16 {
		return nil, fmt.Errorf("unsupported BitsPerComponent %d for RGB", bpc)
	}
	bytesPerSample := bpc / 8
	stride := width * 3 * bytesPerSample
	if len(data) < stride*height {
		return nil, fmt.Errorf("image data truncated: %d bytes for %dx%d RGB at %d bpc", len(data), width, height, bpc)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			off := x * 3 * bytesPerSample
			p := y*img.Stride + x*4
			img.Pix[p+0] = row[off]
			img.Pix[p+1] = row[off+bytesPerSample]
			img.Pix[p+2] = row[off+2*bytesPerSample]
			img.Pix[p+3] = 255
		}
	}
	return img, nil
}

// sampleAt reads the x-th packed sample from a byte-aligned row.
func sampleAt(row []byte, x, bpc int) int {
	switch bpc {
	case 8:
		return int(row[x])
	case 16:
		return int(row[2*x])
	default:
		bit := x * bpc
		b := row[bit/8]
		shift := 8 - bpc - bit%8
		return int(b>>shift) & ((1 << bpc) - 1)
	}
}

func dictInt(dict core.Dict, key string, r core.Resolver) (int, bool) {
	if n, ok := core.Resolve(dict.Get(key), r).(core.Int); ok {
		return int(n), true
	}
	return 0, false
}
