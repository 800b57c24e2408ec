package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// flushEvery bounds how many input frames are buffered before a write.
const flushEvery = 64

// Recorder journals the input frames fed to one game. Call Record once per
// step, with the same frame the game received, and Close when done.
// A Recorder is not safe for concurrent use.
type Recorder struct {
	store *Store
	id    string
	ticks uint64
	buf   []InputRecord
}

// NewRecorder creates a journal entry for a session.
func (s *Store) NewRecorder(variant string, seed int64, config string) (*Recorder, error) {
	id, err := s.CreateReplay(variant, seed, config)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: s, id: id}, nil
}

// ID returns the replay ID.
func (r *Recorder) ID() string {
	return r.id
}

// Ticks returns the number of recorded steps.
func (r *Recorder) Ticks() uint64 {
	return r.ticks
}

// Record journals one step. Empty frames only advance the tick count.
func (r *Recorder) Record(in core.InputFrame) error {
	r.ticks++
	if in.Empty() {
		return nil
	}
	r.buf = append(r.buf, InputRecord{Tick: r.ticks, Frame: in.Encode()})
	if len(r.buf) >= flushEvery {
		return r.Flush()
	}
	return nil
}

// Flush writes buffered frames.
func (r *Recorder) Flush() error {
	if err := r.store.AppendInputs(r.id, r.ticks, r.buf); err != nil {
		return err
	}
	r.buf = r.buf[:0]
	return nil
}

// Close flushes and marks the replay finished.
func (r *Recorder) Close() error {
	if err := r.Flush(); err != nil {
		return fmt.Errorf("storage: close recorder %s: %w", r.id, err)
	}
	return r.store.FinishReplay(r.id, r.ticks)
}

// Frames expands stored records into one frame per step, filling gaps with
// empty frames.
func Frames(ticks uint64, records []InputRecord) ([]core.InputFrame, error) {
	frames := make([]core.InputFrame, ticks)
	for i := range frames {
		frames[i] = core.NewInputFrame()
	}
	for _, rec := range records {
		if rec.Tick == 0 || rec.Tick > ticks {
			return nil, fmt.Errorf("storage: input at tick %d outside replay of %d ticks", rec.Tick, ticks)
		}
		f, err := core.DecodeInputFrame(rec.Frame)
		if err != nil {
			return nil, fmt.Errorf("storage: tick %d: %w", rec.Tick, err)
		}
		frames[rec.Tick-1] = f
	}
	return frames, nil
}
