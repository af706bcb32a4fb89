package effects

import "testing"

func BenchmarkCubic(b *testing.B) {
	x := 0.5
	for b.Loop() {
		x = Cubic(x, 0.8, 0.5)
	}
	_ = x
}

func BenchmarkCubicBlock(b *testing.B) {
	buf := make([]float64, 1024)
	drive := make([]float64, 1024)
	for i := range buf {
		buf[i] = float64(i%64) * 0.01
		drive[i] = 0.8
	}

	b.SetBytes(int64(len(buf) * 8))

	for range b.N {
		CubicBlock(buf, drive, 0.5)
	}
}

func BenchmarkDCBlockerProcessBlock(b *testing.B) {
	d, err := NewDCBlocker(48000)
	if err != nil {
		b.Fatal(err)
	}

	buf := make([]float64, 1024)
	for i := range buf {
		buf[i] = 0.5 + float64(i%32)*0.01
	}

	b.SetBytes(int64(len(buf) * 8))

	for range b.N {
		d.ProcessBlock(buf)
	}
}
