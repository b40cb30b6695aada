package synthesis

import "sort"

// Recognized voice names and their vendor voice IDs. Unrecognized names fail
// fast with ErrInvalidVoice at job creation or synthesis time.
var voiceCatalog = map[string]string{
	"default":  "21m00Tcm4TlvDq8ikWAM",
	"male":     "TxGEqnHWrfWFTfGW9XjX",
	"female":   "EXAVITQu4vr4xnSDxMaL",
	"british":  "N2lVS1w4EtoT3dr4eOWO",
	"american": "pNInz6obpgDQGcFmaJgB",
}

// ValidVoice reports whether name is a recognized voice
func ValidVoice(name string) bool {
	_, ok := voiceCatalog[name]
	return ok
}

// Voices returns the recognized voice names
func Voices() []string {
	names := make([]string, 0, len(voiceCatalog))
	for name := range voiceCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
