// Package wav reads and writes the 16-bit PCM mono WAV framing used for all
// intermediate audio in the pipeline. Vendor clips are converted to this
// format on ingest so the mixer can operate on raw samples deterministically.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnsupported is returned for WAV data that is not 16-bit PCM mono.
var ErrUnsupported = errors.New("unsupported wav format")

const (
	// SampleRate is the fixed internal sample rate, matching what speech
	// vendors and ffmpeg extraction are asked to produce.
	SampleRate = 16000

	headerSize = 44
)

// Duration returns the play length in seconds of a sample buffer
func Duration(samples []int16) float64 {
	return float64(len(samples)) / SampleRate
}

// SampleCount returns the number of samples needed to cover sec seconds
func SampleCount(sec float64) int {
	n := int(sec * SampleRate)
	if n < 0 {
		return 0
	}
	return n
}

// Encode wraps raw 16-bit mono samples in a WAV container
func Encode(samples []int16) []byte {
	dataLen := len(samples) * 2
	buf := make([]byte, headerSize+dataLen)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)                // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)                 // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1)                 // mono
	binary.LittleEndian.PutUint32(buf[24:28], SampleRate)        // sample rate
	binary.LittleEndian.PutUint32(buf[28:32], SampleRate*2)      // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], 2)                 // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16)                // bits per sample
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))

	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[headerSize+i*2:], uint16(s))
	}
	return buf
}

// Decode extracts 16-bit mono samples from a WAV container
func Decode(data []byte) ([]int16, error) {
	if len(data) < headerSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE header", ErrUnsupported)
	}

	// Walk chunks; fmt must precede data.
	var (
		sawFmt  bool
		samples []int16
	)
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			return nil, fmt.Errorf("%w: truncated %q chunk", ErrUnsupported, id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrUnsupported)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			channels := binary.LittleEndian.Uint16(data[body+2 : body+4])
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if format != 1 || channels != 1 || bits != 16 {
				return nil, fmt.Errorf("%w: want 16-bit PCM mono, got format=%d channels=%d bits=%d",
					ErrUnsupported, format, channels, bits)
			}
			sawFmt = true
		case "data":
			if !sawFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt", ErrUnsupported)
			}
			samples = make([]int16, size/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(data[body+i*2:]))
			}
			return samples, nil
		}

		pos = body + size
		if size%2 == 1 {
			pos++ // chunk bodies are word-aligned
		}
	}

	return nil, fmt.Errorf("%w: no data chunk", ErrUnsupported)
}

// FromPCM converts raw little-endian 16-bit PCM bytes to samples
func FromPCM(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}
