package resampler

import "testing"

func TestNewBitmap8RejectsNonPositiveDimensions(t *testing.T) {
	if _, err := NewBitmap8(0, 4, 4, true); err == nil {
		t.Fatal("want error for zero width")
	}
	if _, err := NewBitmap8(4, -1, 4, true); err == nil {
		t.Fatal("want error for negative height")
	}
}

func TestNewBitmap8RejectsBadChannelCount(t *testing.T) {
	if _, err := NewBitmap8(4, 4, 2, true); err == nil {
		t.Fatal("want error for 2 channels")
	}
	if _, err := NewBitmap8(4, 4, 5, true); err == nil {
		t.Fatal("want error for 5 channels")
	}
}

func TestNewBitmap8TightlyPacked(t *testing.T) {
	b, err := NewBitmap8(3, 2, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	if b.Stride != 12 {
		t.Errorf("Stride = %d, want 12", b.Stride)
	}
	if len(b.Pixels) != 24 {
		t.Errorf("len(Pixels) = %d, want 24", len(b.Pixels))
	}
}

func TestBitmap8OneByOneBoundary(t *testing.T) {
	b, err := NewBitmap8(1, 1, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	b.Set(0, 0, 2, 200)
	if got := b.At(0, 0, 2); got != 200 {
		t.Errorf("At(0,0,2) = %d, want 200", got)
	}
}

func TestWrapBitmap8RejectsShortBuffer(t *testing.T) {
	pixels := make([]byte, 4)
	if _, err := WrapBitmap8(pixels, 4, 4, 16, 4, true); err == nil {
		t.Fatal("want error for undersized buffer")
	}
}

func TestWrapBitmap8RejectsStrideShorterThanRow(t *testing.T) {
	pixels := make([]byte, 256)
	if _, err := WrapBitmap8(pixels, 4, 4, 8, 4, true); err == nil {
		t.Fatal("want error for stride < width*channels")
	}
}

func TestWrapBitmap8AllowsPaddedStride(t *testing.T) {
	pixels := make([]byte, 20*4)
	b, err := WrapBitmap8(pixels, 4, 4, 20, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	row := b.Row(1)
	if len(row) != 16 {
		t.Errorf("len(Row(1)) = %d, want 16 (padding excluded)", len(row))
	}
}

func TestBitmap8RowExcludesPadding(t *testing.T) {
	b, err := NewBitmap8(2, 2, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Row(0)) != 6 {
		t.Errorf("len(Row(0)) = %d, want 6", len(b.Row(0)))
	}
}

func TestNewBitmapFloatTightlyPacked(t *testing.T) {
	b := NewBitmapFloat(3, 2, 4, false)
	if b.FloatStride != 12 {
		t.Errorf("FloatStride = %d, want 12", b.FloatStride)
	}
	if len(b.Row(1)) != 12 {
		t.Errorf("len(Row(1)) = %d, want 12", len(b.Row(1)))
	}
}
