package rpp

// MaxEncodedDataLength is the longest opaque effect parameter payload that is
// kept verbatim. Anything longer is replaced by a truncation marker carrying
// the original size — the payload is diagnostic only and never re-serialized.
const MaxEncodedDataLength = 1024

// Project is the parsed document model of a REAPER project file, covering the
// directive subset needed for mix diagnostics. Tracks appear in document order.
type Project struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Tempo         float64 `json:"tempo"`
	TimeSignature string  `json:"time_signature"`
	Tracks        []Track `json:"tracks"`
}

// Track is a single project track. Effects and Items preserve document order.
type Track struct {
	Name    string      `json:"name"`
	Volume  float64     `json:"volume"` // linear gain, 1.0 = unity
	Pan     float64     `json:"pan"`    // -1 (left) .. 1 (right)
	Mute    bool        `json:"mute"`
	Solo    bool        `json:"solo"`
	Effects []Effect    `json:"fx_chain"`
	Items   []MediaItem `json:"items"`
}

// Effect is one entry of a track's effect chain. The display name is taken
// verbatim from the project file and may embed vendor text such as
// "VST3: ValhallaSupermassive (Valhalla DSP, LLC)".
type Effect struct {
	Name     string      `json:"name"`
	Bypassed bool        `json:"bypassed"`
	Params   EncodedBlob `json:"params"`
}

// EncodedBlob holds an effect's opaque base64-ish parameter payload. When the
// accumulated payload exceeds MaxEncodedDataLength the data is dropped and
// Truncated/OriginalSize record what was lost.
type EncodedBlob struct {
	Data         string `json:"data,omitempty"`
	Truncated    bool   `json:"truncated,omitempty"`
	OriginalSize int    `json:"original_size,omitempty"`
}

// newEncodedBlob applies the truncation rule to an accumulated payload.
func newEncodedBlob(data string) EncodedBlob {
	if len(data) > MaxEncodedDataLength {
		return EncodedBlob{Truncated: true, OriginalSize: len(data)}
	}
	return EncodedBlob{Data: data}
}

// MediaItem is an audio item placed on a track. FilePath is absolute: relative
// source paths are resolved against the project file's directory at parse time.
type MediaItem struct {
	Position float64 `json:"position"` // seconds from project start
	Length   float64 `json:"length"`   // seconds
	FilePath string  `json:"audio_filepath"`
}
