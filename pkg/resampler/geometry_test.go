package resampler

import "testing"

func TestRectFitsWithin(t *testing.T) {
	cases := []struct {
		r          Rect
		w, h       int
		wantFits   bool
	}{
		{Rect{0, 0, 10, 10}, 10, 10, true},
		{Rect{0, 0, 11, 10}, 10, 10, false},
		{Rect{-1, 0, 5, 5}, 10, 10, false},
		{Rect{5, 5, 0, 5}, 10, 10, false},
		{Rect{5, 5, 5, 5}, 10, 10, true},
	}
	for _, c := range cases {
		if got := c.r.fitsWithin(c.w, c.h); got != c.wantFits {
			t.Errorf("%+v.fitsWithin(%d,%d) = %v, want %v", c.r, c.w, c.h, got, c.wantFits)
		}
	}
}

func TestFlipXReversesColumns(t *testing.T) {
	b := makeTestBitmap(3, 1, 4, func(x, y, c int) byte { return byte(x) })
	flipX(b)
	want := []byte{2, 1, 0}
	for x, w := range want {
		if got := b.At(x, 0, 0); got != w {
			t.Errorf("after flipX, (%d,0) = %d, want %d", x, got, w)
		}
	}
}

func TestFlipYReversesRows(t *testing.T) {
	b := makeTestBitmap(1, 3, 4, func(x, y, c int) byte { return byte(y) })
	flipY(b)
	want := []byte{2, 1, 0}
	for y, w := range want {
		if got := b.At(0, y, 0); got != w {
			t.Errorf("after flipY, (0,%d) = %d, want %d", y, got, w)
		}
	}
}

func TestTransposeSwapsDimensions(t *testing.T) {
	b := makeTestBitmap(4, 2, 4, func(x, y, c int) byte { return byte(x*10 + y) })
	tr, err := transpose(b)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Width != 2 || tr.Height != 4 {
		t.Fatalf("transpose dims = %dx%d, want 2x4", tr.Width, tr.Height)
	}
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			if got, want := tr.At(y, x, 0), b.At(x, y, 0); got != want {
				t.Errorf("tr(%d,%d) = %d, want %d", y, x, got, want)
			}
		}
	}
}

func TestCopyCropRejectsOutOfBounds(t *testing.T) {
	b := makeTestBitmap(4, 4, 4, func(x, y, c int) byte { return 0 })
	if _, err := copyCrop(b, Rect{X: 2, Y: 2, W: 4, H: 4}); err == nil {
		t.Fatal("want error for crop extending past source bounds")
	}
}

func TestCopyCropExtractsSubregion(t *testing.T) {
	b := makeTestBitmap(4, 4, 4, func(x, y, c int) byte { return byte(x + y*4) })
	cropped, err := copyCrop(b, Rect{X: 1, Y: 1, W: 2, H: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := cropped.At(0, 0, 0); got != b.At(1, 1, 0) {
		t.Errorf("cropped(0,0) = %d, want %d", got, b.At(1, 1, 0))
	}
	if got := cropped.At(1, 1, 0); got != b.At(2, 2, 0) {
		t.Errorf("cropped(1,1) = %d, want %d", got, b.At(2, 2, 0))
	}
}

func TestCopyCropDoesNotAliasSource(t *testing.T) {
	b := makeTestBitmap(4, 4, 4, func(x, y, c int) byte { return 5 })
	cropped, err := copyCrop(b, Rect{X: 0, Y: 0, W: 2, H: 2})
	if err != nil {
		t.Fatal(err)
	}
	cropped.Set(0, 0, 0, 200)
	if b.At(0, 0, 0) != 5 {
		t.Error("mutating the crop mutated the source buffer")
	}
}

func TestBlitIntoRejectsOutOfBounds(t *testing.T) {
	dst, _ := NewBitmap8(4, 4, 4, true)
	src, _ := NewBitmap8(2, 2, 4, true)
	if err := blitInto(dst, Rect{X: 3, Y: 3, W: 2, H: 2}, src); err == nil {
		t.Fatal("want error for target rect extending past destination bounds")
	}
}

func TestBlitIntoRejectsSizeMismatch(t *testing.T) {
	dst, _ := NewBitmap8(4, 4, 4, true)
	src, _ := NewBitmap8(2, 3, 4, true)
	if err := blitInto(dst, Rect{X: 0, Y: 0, W: 2, H: 2}, src); err == nil {
		t.Fatal("want error when rect size doesn't match rendered size")
	}
}

func TestBlitIntoLeavesRestOfDestinationUntouched(t *testing.T) {
	dst := makeTestBitmap(4, 4, 4, func(x, y, c int) byte { return 9 })
	src := makeTestBitmap(2, 2, 4, func(x, y, c int) byte { return 200 })
	if err := blitInto(dst, Rect{X: 1, Y: 1, W: 2, H: 2}, src); err != nil {
		t.Fatal(err)
	}
	if dst.At(0, 0, 0) != 9 {
		t.Error("blitInto touched a pixel outside the target rect")
	}
	if dst.At(1, 1, 0) != 200 {
		t.Error("blitInto did not write the rendered pixel")
	}
}
