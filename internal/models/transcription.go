package models

// Word is one recognised token with its timing in milliseconds.
type Word struct {
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Confidence float64 `json:"confidence"`
}

type Transcription struct {
	Text       string `json:"text"`
	Segments   []Word `json:"segments"`
	Language   string `json:"language"`
	IsFallback bool   `json:"is_fallback"`
}
