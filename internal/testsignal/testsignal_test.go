package testsignal

import (
	"math"
	"testing"
)

func TestGenerate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			a, err := Generate(name, 16000, 4800)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			b, _ := Generate(name, 16000, 4800)
			if len(a) != 4800 {
				t.Fatalf("got %d samples", len(a))
			}
			var energy float64
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("sample %d differs between calls", i)
				}
				if math.Abs(float64(a[i])) > 0.98 {
					t.Fatalf("sample %d = %v out of range", i, a[i])
				}
				energy += float64(a[i]) * float64(a[i])
			}
			if name == Silence && energy != 0 {
				t.Errorf("silence has energy %v", energy)
			}
			if name != Silence && energy == 0 {
				t.Errorf("%s is silent", name)
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		signal     string
		rate, size int
	}{
		{"unknown", "pink", 16000, 10},
		{"zero rate", Speech, 0, 10},
		{"negative size", Speech, 16000, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.signal, tt.rate, tt.size); err == nil {
				t.Errorf("Generate(%q, %d, %d) succeeded", tt.signal, tt.rate, tt.size)
			}
		})
	}
}

func TestNoiseRange(t *testing.T) {
	var minV, maxV float64
	for i := 0; i < 10000; i++ {
		v := hashNoise(i, 3)
		minV, maxV = min(minV, v), max(maxV, v)
	}
	if minV > -0.9 || maxV < 0.9 || minV < -1 || maxV > 1 {
		t.Errorf("hashNoise range [%v, %v]", minV, maxV)
	}
}
