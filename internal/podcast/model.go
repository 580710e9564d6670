package podcast

import "time"

// KeyPoint is one narrated highlight of the source recording.
type KeyPoint struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Podcast is the generated output: the concatenated audio file plus the
// metadata describing it. The same shape is written to the JSON sidecar
// next to the audio file and persisted in the store.
type Podcast struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CreatedAt   time.Time  `json:"created_at"`
	Intro       string     `json:"intro"`
	Outro       string     `json:"outro"`
	KeyPoints   []KeyPoint `json:"key_points"`
	AudioFile   string     `json:"audio_file"`
	DurationSec float64    `json:"duration_sec"`
}
