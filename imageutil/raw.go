package imageutil

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Raw dumps hold the exact bytes the transforms consume: a 12-byte header
// ("RGBA" magic, big-endian uint32 width and height) followed by
// 4*width*height bytes of row-major RGBA. Files ending in ".zst" are
// zstd-compressed.
const rawMagic = "RGBA"

// maxRawPixels bounds the allocation made when reading an untrusted header.
const maxRawPixels = 1 << 28

// ErrBadRawHeader is returned when a raw dump does not start with the
// expected magic or declares an implausible size.
var ErrBadRawHeader = errors.New("bad raw image header")

// IsRawPath reports whether path names a raw RGBA dump.
func IsRawPath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".rgba") || strings.HasSuffix(p, ".rgba.zst")
}

// WriteRaw writes img as an uncompressed raw dump.
func WriteRaw(w io.Writer, img *RGBAImage) error {
	var hdr [12]byte
	copy(hdr[:4], rawMagic)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(img.Width()))
	binary.BigEndian.PutUint32(hdr[8:12], uint32(img.Height()))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(img.Pixels())
	return err
}

// ReadRaw reads an uncompressed raw dump.
func ReadRaw(r io.Reader) (*RGBAImage, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("failed to read raw header: %w", err)
	}
	if string(hdr[:4]) != rawMagic {
		return nil, ErrBadRawHeader
	}
	width := int(binary.BigEndian.Uint32(hdr[4:8]))
	height := int(binary.BigEndian.Uint32(hdr[8:12]))
	if width > maxRawPixels || height > maxRawPixels ||
		width*height > maxRawPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadRawHeader, width, height)
	}

	img := NewRGBAImage(width, height)
	if _, err := io.ReadFull(r, img.Pix); err != nil {
		return nil, fmt.Errorf("failed to read raw pixels: %w", err)
	}
	return img, nil
}

// WriteRawZstd writes img as a zstd-compressed raw dump.
func WriteRawZstd(w io.Writer, img *RGBAImage) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	if err := WriteRaw(enc, img); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadRawZstd reads a zstd-compressed raw dump.
func ReadRawZstd(r io.Reader) (*RGBAImage, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()
	return ReadRaw(dec)
}

// SaveRaw writes img to path, compressing when the name ends in ".zst".
func SaveRaw(img *RGBAImage, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		err = WriteRawZstd(bw, img)
	} else {
		err = WriteRaw(bw, img)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// LoadRaw reads a raw dump from path.
func LoadRaw(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		return ReadRawZstd(br)
	}
	return ReadRaw(br)
}
