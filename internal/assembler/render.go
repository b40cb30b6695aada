package assembler

import (
	"context"
	"fmt"
	"math"

	"github.com/dharshini66/podcast-generator/internal/wav"
)

// Assets holds the decoded audio the renderer draws from
type Assets struct {
	// Source is the full original recording.
	Source []int16
	// Narration maps key segment IDs to decoded narration clips.
	Narration map[string][]int16
	// Music is the optional background bed; looped if shorter than the output.
	Music []int16
}

// Ducking gains for the music bed, as linear factors.
const (
	duckUnderNarration = 0.251 // -12dB
	duckUnderExcerpt   = 0.501 // -6dB
)

// DecodeAsset decodes WAV bytes into mixable samples, mapping any decode
// failure to ErrAssetUnreadable.
func DecodeAsset(data []byte) ([]int16, error) {
	samples, err := wav.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnreadable, err)
	}
	return samples, nil
}

// Render mixes the timeline into a single 16-bit PCM mono WAV artifact.
// The mix is fully deterministic for identical input: linear crossfades, no
// dithering, float accumulation clamped once at the end.
func (a *implAssembler) Render(ctx context.Context, timeline []TimelineEntry, assets Assets) ([]byte, error) {
	if len(timeline) == 0 {
		return nil, ErrEmptyTimeline
	}

	total := wav.SampleCount(TotalDuration(timeline))
	mix := make([]float64, total)

	// Ducking gain per output sample, from the speech entries' coverage.
	musicGain := make([]float64, 0)
	var music *TimelineEntry
	for i := range timeline {
		if timeline[i].Kind == KindMusicBed {
			music = &timeline[i]
		}
	}
	if music != nil {
		musicGain = make([]float64, total)
		for i := range musicGain {
			musicGain[i] = duckUnderExcerpt
		}
	}

	// Speech entries in timeline order; fade regions are wherever two entries
	// overlap in output time.
	var speech []TimelineEntry
	for _, e := range timeline {
		if e.Kind != KindMusicBed {
			speech = append(speech, e)
		}
	}

	for i, e := range speech {
		samples, err := a.entrySamples(e, assets)
		if err != nil {
			return nil, err
		}

		start := wav.SampleCount(e.Offset)
		fadeIn := 0
		if i > 0 {
			prev := speech[i-1]
			fadeIn = wav.SampleCount(prev.Offset+prev.Duration-e.Offset)
		}
		fadeOut := 0
		if i < len(speech)-1 {
			next := speech[i+1]
			fadeOut = wav.SampleCount(e.Offset+e.Duration-next.Offset)
		}

		for j, s := range samples {
			pos := start + j
			if pos >= total {
				break
			}
			gain := 1.0
			if fadeIn > 0 && j < fadeIn {
				gain *= float64(j) / float64(fadeIn)
			}
			if fadeOut > 0 && j >= len(samples)-fadeOut {
				gain *= float64(len(samples)-j) / float64(fadeOut)
			}
			mix[pos] += float64(s) * gain

			if music != nil {
				duck := duckUnderExcerpt
				if e.Kind == KindNarration {
					duck = duckUnderNarration
				}
				if duck < musicGain[pos] {
					musicGain[pos] = duck
				}
			}
		}
	}

	if music != nil {
		if len(assets.Music) == 0 {
			return nil, fmt.Errorf("%w: music bed %q has no samples", ErrAssetUnreadable, music.Ref)
		}
		start := wav.SampleCount(music.Offset)
		count := wav.SampleCount(music.Duration)
		for j := 0; j < count; j++ {
			pos := start + j
			if pos >= total {
				break
			}
			s := assets.Music[j%len(assets.Music)] // loop the bed
			mix[pos] += float64(s) * musicGain[pos]
		}
	}

	out := make([]int16, total)
	for i, v := range mix {
		out[i] = clampSample(v)
	}

	a.logger.Debug(ctx, "Rendered %d entries into %.2fs of audio", len(timeline), wav.Duration(out))
	return wav.Encode(out), nil
}

// entrySamples resolves an entry's audio from the assets
func (a *implAssembler) entrySamples(e TimelineEntry, assets Assets) ([]int16, error) {
	switch e.Kind {
	case KindNarration:
		samples, ok := assets.Narration[e.Ref]
		if !ok || len(samples) == 0 {
			return nil, fmt.Errorf("%w: narration clip %q missing", ErrAssetUnreadable, e.Ref)
		}
		return samples, nil

	case KindOriginalExcerpt:
		if len(assets.Source) == 0 {
			return nil, fmt.Errorf("%w: no source audio for excerpt %q", ErrAssetUnreadable, e.Ref)
		}
		start := wav.SampleCount(e.SourceStart)
		end := wav.SampleCount(e.SourceEnd)
		if start > len(assets.Source) {
			start = len(assets.Source)
		}
		if end > len(assets.Source) {
			end = len(assets.Source)
		}
		// Pad with silence when the recording is shorter than the span.
		samples := make([]int16, wav.SampleCount(e.Duration))
		copy(samples, assets.Source[start:end])
		return samples, nil

	default:
		return nil, fmt.Errorf("%w: unknown entry kind %q", ErrAssetUnreadable, e.Kind)
	}
}

func clampSample(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
