package img2skel

import (
	"path/filepath"
	"testing"

	"github.com/wbrown/img2skel/imageutil"
)

func testPanels(t *testing.T) []Panel {
	t.Helper()
	red := RGB{255, 0, 0}
	a, _ := NewMatrix(4, 3, []RGB{
		red, red, red, red,
		red, red, red, red,
		red, red, red, red,
	})
	b, _ := NewMatrix(2, 2, []RGB{Black, White, White, Black})
	return []Panel{{"red", a}, {"checker", b}, {"again", a}}
}

func TestContactSheetLayoutWithoutCaptions(t *testing.T) {
	opts := DefaultSheetOptions()
	opts.FontSize = 0
	opts.Padding = 2
	opts.Scale = 2
	opts.Columns = 2

	sheet, err := ContactSheet(testPanels(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	// Cells are 8x6 after scaling: 2 + 2*(8+2) wide, 2 + 2*(6+2) tall.
	if w, h := sheet.Bounds().Dx(), sheet.Bounds().Dy(); w != 22 || h != 18 {
		t.Fatalf("Sheet is %dx%d, want 22x18", w, h)
	}

	img := imageutil.RGBAImageFromImage(sheet)
	if c := img.GetRGB(0, 0); c != (imageutil.RGB{R: 48, G: 48, B: 48}) {
		t.Errorf("Background = %v", c)
	}
	if c := img.GetRGB(2, 2); c != (imageutil.RGB{R: 255}) {
		t.Errorf("First panel origin = %v, want red", c)
	}
	// Second panel starts at x = 2 + 10; its top-left cell is black and
	// spans two pixels.
	if c := img.GetRGB(13, 3); c != (imageutil.RGB{}) {
		t.Errorf("Second panel cell = %v, want black", c)
	}
	if c := img.GetRGB(14, 2); c != (imageutil.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Second panel cell = %v, want white", c)
	}
	// Third panel wraps to the second row.
	if c := img.GetRGB(2, 10); c != (imageutil.RGB{R: 255}) {
		t.Errorf("Third panel origin = %v, want red", c)
	}
}

func TestContactSheetCaptions(t *testing.T) {
	opts := DefaultSheetOptions()
	withCaptions, err := ContactSheet(testPanels(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	plain := opts
	plain.FontSize = 0
	without, err := ContactSheet(testPanels(t), plain)
	if err != nil {
		t.Fatal(err)
	}
	if withCaptions.Bounds().Dx() != without.Bounds().Dx() {
		t.Error("Captions should not change the sheet width")
	}
	if withCaptions.Bounds().Dy() <= without.Bounds().Dy() {
		t.Error("Captions should add a text row above every panel")
	}

	// Some pixel above the first panel row must be caption ink.
	img := imageutil.RGBAImageFromImage(withCaptions)
	bg := imageutil.RGB{R: 48, G: 48, B: 48}
	inked := false
	for y := 0; y < opts.Padding+int(opts.FontSize) && !inked; y++ {
		for x := 0; x < img.Width(); x++ {
			if img.GetRGB(x, y) != bg {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("Expected caption text to be drawn")
	}
}

func TestContactSheetEmpty(t *testing.T) {
	sheet, err := ContactSheet(nil, DefaultSheetOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !sheet.Bounds().Empty() {
		t.Errorf("Expected an empty sheet, got %v", sheet.Bounds())
	}
}

func TestSaveContactSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	if err := SaveContactSheet(testPanels(t), DefaultSheetOptions(), path); err != nil {
		t.Fatal(err)
	}
	if _, err := imageutil.LoadImage(path); err != nil {
		t.Errorf("Saved sheet does not load: %v", err)
	}
}
