package frame

import "testing"

func TestGenerateDitherQ7(t *testing.T) {
	tests := []struct {
		name string
		gain int
		want []int16
	}{
		{"dense", 0, []int16{56, 18, 0, -63, 0, 39, 0, 26, -51, 0, 55, -51}},
		{"sparse", 1000, []int16{43, 0, 0, 14, 0, -48, 30, 0, 20, 0, 0, -39}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]int16, len(tt.want))
			for i := range buf {
				buf[i] = 999
			}
			GenerateDitherQ7(buf, 5, tt.gain)
			for i := range tt.want {
				if buf[i] != tt.want[i] {
					t.Errorf("dither[%d] = %d, want %d", i, buf[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerateDitherPatterns(t *testing.T) {
	const n = 481
	t.Run("dense has one zero per triplet", func(t *testing.T) {
		buf := make([]int16, n)
		GenerateDitherQ7(buf, 12345, 200)
		for k := 0; k+2 < n; k += 3 {
			zeros := 0
			for _, v := range buf[k : k+3] {
				if v == 0 {
					zeros++
				}
				if v < -64 || v > 64 {
					t.Fatalf("dither %d out of range at %d", v, k)
				}
			}
			if zeros < 1 {
				t.Fatalf("triplet at %d has no zero: %v", k, buf[k:k+3])
			}
		}
		if buf[n-1] != 0 {
			t.Errorf("trailing sample = %d, want 0", buf[n-1])
		}
	})

	t.Run("sparse has one zero per pair", func(t *testing.T) {
		buf := make([]int16, n)
		GenerateDitherQ7(buf, 12345, 2000)
		for k := 0; k+1 < n; k += 2 {
			if buf[k] != 0 && buf[k+1] != 0 {
				t.Fatalf("pair at %d has no zero: %v", k, buf[k:k+2])
			}
			// Gain 22528-20000 in Q14 scales dither down to about 1/6.
			if buf[k] < -11 || buf[k] > 11 || buf[k+1] < -11 || buf[k+1] > 11 {
				t.Fatalf("pair at %d not scaled: %v", k, buf[k:k+2])
			}
		}
		if buf[n-1] != 0 {
			t.Errorf("trailing sample = %d, want 0", buf[n-1])
		}
	})
}

func TestQuantizeQ7(t *testing.T) {
	tests := []struct {
		x    int32
		d    int16
		want int16
	}{
		{0, 0, 0},
		{63, 0, 0},
		{64, 0, 128},
		{-64, 0, 0},
		{-65, 0, -128},
		{100, 30, 98},
		{100, -30, 158},
		{-300, 17, -273},
	}
	for _, tt := range tests {
		got := QuantizeQ7(tt.x, tt.d)
		if got != tt.want {
			t.Errorf("QuantizeQ7(%d, %d) = %d, want %d", tt.x, tt.d, got, tt.want)
		}
		if (int32(got)+int32(tt.d))%128 != 0 {
			t.Errorf("QuantizeQ7(%d, %d) = %d is off the dithered grid", tt.x, tt.d, got)
		}
		if diff := int32(got) - tt.x; diff < -64 || diff > 64 {
			t.Errorf("QuantizeQ7(%d, %d) = %d is more than half a step away", tt.x, tt.d, got)
		}
	}
}

func TestMagnitudeEnvelope(t *testing.T) {
	in := []int32{861184, 861184, 105, 105, 53824}
	want := []uint16{928, 928, 10, 10, 232}
	got := make([]uint16, len(in))
	MagnitudeEnvelope(got, in)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("envelope[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	t.Run("every level is nonzero", func(t *testing.T) {
		env := make([]uint16, Levels)
		MagnitudeEnvelope(env, invPowerQ16[:])
		for l, v := range env {
			if v == 0 {
				t.Errorf("level %d envelope is zero", l)
			}
			if l > 0 && v > env[l-1] {
				t.Errorf("level %d envelope %d above level %d envelope %d", l, v, l-1, env[l-1])
			}
		}
	})
}

func TestLevelForPower(t *testing.T) {
	tests := []struct {
		power float64
		want  int
	}{
		{0, 0},
		{0.25, 0},
		{1, 2},
		{16, 6},
		{256, 10},
		{1e9, Levels - 1},
	}
	for _, tt := range tests {
		if got := levelForPower(tt.power); got != tt.want {
			t.Errorf("levelForPower(%v) = %d, want %d", tt.power, got, tt.want)
		}
	}
}

func TestTablesWellFormed(t *testing.T) {
	tables := map[string][]uint16{
		"seed":  seedCDF,
		"shift": shiftCDF[:],
		"level": levelCDF[:],
		"delta": deltaCDF[:],
	}
	for name, cdf := range tables {
		if cdf[0] != 0 || cdf[len(cdf)-1] != 65535 {
			t.Errorf("%s table does not span [0, 65535]", name)
		}
		for i := 1; i < len(cdf); i++ {
			if cdf[i] <= cdf[i-1] {
				t.Errorf("%s table not strictly increasing at %d", name, i)
			}
		}
	}
	if len(levelCDF) > levelBisect-1 {
		t.Errorf("level table has %d entries, too many for bisection size %d", len(levelCDF), levelBisect)
	}
	if len(seedCDF) != 257 {
		t.Errorf("seed table has %d entries, want 257", len(seedCDF))
	}
}
