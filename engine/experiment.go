package engine

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Event types written to the log.
const (
	EventBlockStart     = "BLOCK_START"
	EventFixationOnset  = "FIXATION_ONSET"
	EventStimulusOnset  = "STIMULUS_ONSET"
	EventStimulusOffset = "STIMULUS_OFFSET"
	EventResponseWindow = "RESPONSE_WINDOW"
	EventResponse       = "RESPONSE"
	EventBlockEnd       = "BLOCK_END"
	EventBlockCancel    = "BLOCK_CANCEL"
	EventBlockAbort     = "BLOCK_ABORT"
)

type EventLogEntry struct {
	Block       int
	Trial       int
	IntendedMS  uint64
	TimestampMS uint64
	Type        string
	Label       string
}

// EventLog collects timing events of one program run. Every row carries the
// run id so logs from several runs can be concatenated.
type EventLog struct {
	RunID   uuid.UUID
	mu      sync.Mutex
	Entries []EventLogEntry
}

func NewEventLog() *EventLog {
	return &EventLog{RunID: uuid.New()}
}

func (l *EventLog) Log(block, trial int, intended, actual uint64, etype, label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, EventLogEntry{
		Block:       block,
		Trial:       trial,
		IntendedMS:  intended,
		TimestampMS: actual,
		Type:        etype,
		Label:       label,
	})
}

func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Entries)
}

// Write encodes the log as CSV with a header row.
func (l *EventLog) Write(out io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := csv.NewWriter(out)
	w.Write([]string{"run_id", "block", "trial", "intended_ms", "actual_ms", "type", "label"})
	run := l.RunID.String()
	for _, e := range l.Entries {
		w.Write([]string{
			run,
			strconv.Itoa(e.Block),
			strconv.Itoa(e.Trial),
			strconv.FormatUint(e.IntendedMS, 10),
			strconv.FormatUint(e.TimestampMS, 10),
			e.Type,
			e.Label,
		})
	}
	w.Flush()
	return errors.Wrap(w.Error(), "failed to write event log")
}

func (l *EventLog) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create event log")
	}
	defer f.Close()

	if err := l.Write(f); err != nil {
		return err
	}
	return f.Close()
}
