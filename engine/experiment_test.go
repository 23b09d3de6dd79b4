package engine_test

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/advanderveer/go-test"
	"github.com/iainireland/signal-detection-demo/engine"
)

func TestEventLogCSV(t *testing.T) {
	l := engine.NewEventLog()
	l.Log(1, 2, 1000, 1003, engine.EventFixationOnset, "")
	l.Log(1, 2, 1250, 1250, engine.EventStimulusOnset, "12,40")

	var buf bytes.Buffer
	test.Ok(t, l.Write(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	test.Ok(t, err)
	test.Equals(t, 3, len(rows))
	test.Equals(t, []string{"run_id", "block", "trial", "intended_ms", "actual_ms", "type", "label"}, rows[0])
	test.Equals(t, []string{l.RunID.String(), "1", "2", "1000", "1003", "FIXATION_ONSET", ""}, rows[1])
	test.Equals(t, "12,40", rows[2][6])
}

func TestEventLogSave(t *testing.T) {
	l := engine.NewEventLog()
	l.Log(0, 0, 0, 0, engine.EventBlockStart, "")
	test.Ok(t, l.Save(filepath.Join(t.TempDir(), "results.csv")))
	test.Equals(t, 1, l.Len())
}

func TestRunIDsDiffer(t *testing.T) {
	test.Assert(t, engine.NewEventLog().RunID != engine.NewEventLog().RunID, "run ids should be unique")
}
