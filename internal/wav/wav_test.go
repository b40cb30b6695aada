package wav

import (
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	samples := make([]int16, 1600)
	for i := range samples {
		samples[i] = int16(i*37 - 8000)
	}

	got, err := Decode(Encode(samples))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("Decode() len = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("this is definitely not a wav file, not even close!!")},
		{"truncated header", []byte("RIFF")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); !errors.Is(err, ErrUnsupported) {
				t.Errorf("Decode() error = %v, want ErrUnsupported", err)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	if d := Duration(make([]int16, SampleRate*3)); d != 3 {
		t.Errorf("Duration(3s of samples) = %v, want 3", d)
	}
	if n := SampleCount(0.5); n != SampleRate/2 {
		t.Errorf("SampleCount(0.5) = %d, want %d", n, SampleRate/2)
	}
}
