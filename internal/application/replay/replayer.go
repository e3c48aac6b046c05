package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/younwookim/brawl/internal/application/match"
	"github.com/younwookim/brawl/internal/domain/input"
)

// ErrDigestMismatch is returned when a replay does not reproduce its recorded digest
var ErrDigestMismatch = errors.New("replay digest mismatch")

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next returns every fighter's buttons for the current frame and advances
func (r *Replayer) Next() ([]input.Buttons, bool) {
	if r.frame >= len(r.data.Frames) {
		return nil, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	out := make([]input.Buttons, len(fi.P))
	for i, p := range fi.P {
		out[i] = p.Buttons()
	}
	return out, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Session returns the recorded session ID
func (r *Replayer) Session() uuid.UUID {
	return r.data.Session
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Verify resets m, feeds it every recorded frame and compares the final
// digest with the recorded one. Returns the digest that was reached.
func Verify(m *match.Match, data ReplayData) (uint64, error) {
	m.Reset()
	r := NewReplayer(data)
	for {
		inputs, ok := r.Next()
		if !ok {
			break
		}
		if err := m.Tick(inputs); err != nil {
			return 0, fmt.Errorf("failed to replay frame %d: %w", r.CurrentFrame()-1, err)
		}
	}

	got := m.Digest()
	if data.Digest != "" && FormatDigest(got) != data.Digest {
		return got, fmt.Errorf("%w: recorded %s, replayed %s", ErrDigestMismatch, data.Digest, FormatDigest(got))
	}
	return got, nil
}
