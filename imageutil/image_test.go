package imageutil

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if a := img.RGBAAt(5, 5).A; a != 255 {
		t.Errorf("SetRGB should write opaque pixels, alpha=%d", a)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageFromImageRebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.Set(10, 20, RGB{R: 1, G: 2, B: 3}.ToColor())
	src.Set(13, 22, RGB{R: 4, G: 5, B: 6}.ToColor())

	img := RGBAImageFromImage(src)
	if img.Width() != 4 || img.Height() != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{1, 2, 3}) {
		t.Errorf("Top-left pixel = %v", got)
	}
	if got := img.GetRGB(3, 2); got != (RGB{4, 5, 6}) {
		t.Errorf("Bottom-right pixel = %v", got)
	}
}

func TestPixelsIsTightlyPacked(t *testing.T) {
	// A sub-image has a stride wider than its rows.
	parent := NewRGBAImage(8, 8)
	parent.SetRGB(2, 3, RGB{R: 9, G: 8, B: 7})
	sub := &RGBAImage{RGBA: parent.SubImage(image.Rect(2, 3, 5, 5)).(*image.RGBA)}

	pix := sub.Pixels()
	if len(pix) != 4*3*2 {
		t.Fatalf("Expected %d bytes, got %d", 4*3*2, len(pix))
	}
	if pix[0] != 9 || pix[1] != 8 || pix[2] != 7 || pix[3] != 255 {
		t.Errorf("First pixel = %v", pix[:4])
	}
}

func TestRGBAImageFromPixels(t *testing.T) {
	if _, err := RGBAImageFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("Expected error for short buffer")
	}
	pix := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	img, err := RGBAImageFromPixels(pix, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	pix[0] = 99
	if img.GetRGB(0, 0).R != 1 {
		t.Error("RGBAImageFromPixels should copy its input")
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestFit(t *testing.T) {
	testCases := []struct {
		name          string
		width, height int
		maxW, maxH    int
		wantW, wantH  int
	}{
		{"already fits", 100, 80, 300, 300, 100, 80},
		{"wide", 600, 300, 300, 300, 300, 150},
		{"tall", 300, 900, 300, 300, 100, 300},
		{"unbounded height", 600, 900, 300, 0, 300, 450},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := CreateGradientImage(tc.width, tc.height)
			got := Fit(img, tc.maxW, tc.maxH, InterpolationNearest)
			if got.Width() != tc.wantW || got.Height() != tc.wantH {
				t.Errorf("Expected %dx%d, got %dx%d",
					tc.wantW, tc.wantH, got.Width(), got.Height())
			}
		})
	}
}

func TestCrop(t *testing.T) {
	img := CreateGradientImage(400, 200)
	cropped := Crop(img, 300, 300)
	if cropped.Width() != 300 || cropped.Height() != 200 {
		t.Fatalf("Expected 300x200, got %dx%d", cropped.Width(), cropped.Height())
	}
	if cropped.GetRGB(299, 10) != img.GetRGB(299, 10) {
		t.Error("Crop should keep the top-left region unchanged")
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateCheckerboardImage(64, 64, 8)

	pngPath := filepath.Join(tmpDir, "test.png")
	if err := SaveImage(img.RGBA, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	// PNG should be lossless
	if mse := CalculateMSE(img, loaded); mse != 0 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}
}

func TestRawRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateGradientImage(33, 17)

	for _, name := range []string{"dump.rgba", "dump.rgba.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			if err := SaveImage(img.RGBA, path); err != nil {
				t.Fatalf("Failed to save raw dump: %v", err)
			}
			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("Failed to load raw dump: %v", err)
			}
			if !bytes.Equal(loaded.Pixels(), img.Pixels()) {
				t.Error("Raw dump should preserve every byte")
			}
		})
	}
}

func TestRawCompresses(t *testing.T) {
	img := CreateSolidImage(256, 256, RGB{R: 255, G: 255, B: 255})

	var plain, packed bytes.Buffer
	if err := WriteRaw(&plain, img); err != nil {
		t.Fatal(err)
	}
	if err := WriteRawZstd(&packed, img); err != nil {
		t.Fatal(err)
	}
	if packed.Len() >= plain.Len()/10 {
		t.Errorf("Expected solid image to compress well: %d vs %d bytes",
			packed.Len(), plain.Len())
	}
}

func TestReadRawRejectsBadMagic(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader([]byte("PNG\x00\x00\x00\x00\x01\x00\x00\x00\x01")))
	if !errors.Is(err, ErrBadRawHeader) {
		t.Errorf("Expected ErrBadRawHeader, got %v", err)
	}
}

func TestCalculateJaccardIndex(t *testing.T) {
	white := RGB{255, 255, 255}
	black := RGB{0, 0, 0}
	a := CreateSolidImage(10, 10, white)
	b := CreateSolidImage(10, 10, white)

	if j := CalculateJaccardIndex(a, b); j != 1.0 {
		t.Errorf("Empty images should have Jaccard=1, got %f", j)
	}

	a = CreateRectImage(10, 10, image.Rect(0, 5, 5, 6), black, white)
	b = CreateRectImage(10, 10, image.Rect(5, 5, 10, 6), black, white)
	if j := CalculateJaccardIndex(a, b); j != 0.0 {
		t.Errorf("Non-overlapping shapes should have Jaccard=0, got %f", j)
	}
	if j := CalculateJaccardIndex(a, a); j != 1.0 {
		t.Errorf("Identical shapes should have Jaccard=1, got %f", j)
	}
}

// TestSaveTestImages saves test images to testdata directory for visual inspection.
// Run with: SAVE_TEST_IMAGES=1 go test -run TestSaveTestImages -v
func TestSaveTestImages(t *testing.T) {
	if os.Getenv("SAVE_TEST_IMAGES") != "1" {
		t.Skip("Set SAVE_TEST_IMAGES=1 to generate test images")
	}

	testdataDir := "../testdata"
	os.MkdirAll(testdataDir, 0755)

	SaveImage(CreateGradientImage(256, 256).RGBA, filepath.Join(testdataDir, "gradient.png"))
	SaveImage(CreateCheckerboardImage(256, 256, 32).RGBA, filepath.Join(testdataDir, "checkerboard.png"))
	SaveImage(CreateRectImage(64, 64, image.Rect(8, 20, 56, 44), RGB{}, RGB{255, 255, 255}).RGBA,
		filepath.Join(testdataDir, "bar.png"))

	t.Log("Test images saved to testdata/")
}
