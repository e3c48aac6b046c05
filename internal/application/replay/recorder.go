package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/brawl/internal/domain/input"
)

// Recorder handles input recording
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for a new session
func NewRecorder(fighters []string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Session:   uuid.New(),
			Fighters:  append([]string(nil), fighters...),
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input
func (r *Recorder) RecordFrame(inputs []input.Buttons) {
	if !r.recording {
		return
	}

	fi := FrameInput{F: r.frame, P: make([]ButtonsInput, len(inputs))}
	for i, b := range inputs {
		fi.P[i] = fromButtons(b)
	}

	r.data.Frames = append(r.data.Frames, fi)
	r.frame++
}

// Finish stops recording and stores the match digest after the last frame
func (r *Recorder) Finish(digest uint64) {
	r.recording = false
	r.data.Digest = FormatDigest(digest)
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Data returns the recorded data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

// FormatDigest renders a match digest the way replays store it
func FormatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}
