package voice

// MinAudioBytes rejects uploads too small to hold a few seconds of speech.
// Browser recordings below this size are almost always truncated.
const MinAudioBytes = 10 * 1024

// NoSpeechPlaceholder is returned when transcription yields an empty text.
const NoSpeechPlaceholder = "[No speech detected]"

// TranscribeResponse is the transcription response body. Duration is in
// seconds and zero when it could not be determined.
type TranscribeResponse struct {
	Success  bool    `json:"success"`
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Result is a transcriber's raw output.
type Result struct {
	Text     string
	Language string
}
