package engine

import "github.com/pkg/errors"

// DefaultTrials is the number of trials in a block unless configured otherwise.
const DefaultTrials = 40

// Outcome pairs what was shown with what the subject reported.
type Outcome struct {
	Expected bool
	Observed bool
}

type Category int

const (
	TruePositive Category = iota
	TrueNegative
	FalsePositive
	FalseNegative
)

func (c Category) String() string {
	switch c {
	case TruePositive:
		return "true positive"
	case TrueNegative:
		return "true negative"
	case FalsePositive:
		return "false positive"
	default:
		return "false negative"
	}
}

// Classify places an outcome in the signal detection contingency table.
func Classify(o Outcome) Category {
	switch {
	case o.Expected && o.Observed:
		return TruePositive
	case !o.Expected && !o.Observed:
		return TrueNegative
	case !o.Expected && o.Observed:
		return FalsePositive
	default:
		return FalseNegative
	}
}

// Summary holds the tallied outcomes of a block.
type Summary struct {
	TruePositive  int
	TrueNegative  int
	FalsePositive int
	FalseNegative int
}

func (s Summary) Total() int {
	return s.TruePositive + s.TrueNegative + s.FalsePositive + s.FalseNegative
}

// HitRate is the fraction of signal trials that were reported. It is zero
// when no signal was shown.
func (s Summary) HitRate() float64 {
	n := s.TruePositive + s.FalseNegative
	if n == 0 {
		return 0
	}
	return float64(s.TruePositive) / float64(n)
}

// FalseAlarmRate is the fraction of noise trials reported as a signal.
func (s Summary) FalseAlarmRate() float64 {
	n := s.FalsePositive + s.TrueNegative
	if n == 0 {
		return 0
	}
	return float64(s.FalsePositive) / float64(n)
}

func (s Summary) Accuracy() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.TruePositive+s.TrueNegative) / float64(s.Total())
}

// Block is the ledger of one run of trials. It is not safe for concurrent
// use; the sequencer goroutine owns it.
type Block struct {
	Number int

	total      int
	results    []Outcome
	remaining  int
	pending    bool
	hasPending bool
}

func NewBlock(number, total int) (*Block, error) {
	if total <= 0 {
		return nil, errors.Wrapf(ErrInvalidTrialCount, "got %d", total)
	}
	return &Block{
		Number:    number,
		total:     total,
		results:   make([]Outcome, 0, total),
		remaining: total,
	}, nil
}

// SetExpected records the ground truth of the trial about to be answered.
func (b *Block) SetExpected(v bool) error {
	if b.IsDone() {
		return errors.Wrapf(ErrBlockDone, "block %d", b.Number)
	}
	if b.hasPending {
		return errors.Wrapf(ErrExpectationPending, "block %d trial %d", b.Number, b.CurrentTrial())
	}
	b.pending, b.hasPending = v, true
	return nil
}

// SetResult pairs the response with the pending expectation and completes
// the trial.
func (b *Block) SetResult(v bool) error {
	if !b.hasPending {
		return errors.Wrapf(ErrNoExpectation, "block %d trial %d", b.Number, b.CurrentTrial())
	}
	b.results = append(b.results, Outcome{Expected: b.pending, Observed: v})
	b.hasPending = false
	b.remaining--
	return nil
}

func (b *Block) IsDone() bool { return b.remaining == 0 }

// CurrentTrial is the 1-based ordinal of the trial in progress.
func (b *Block) CurrentTrial() int { return len(b.results) + 1 }

func (b *Block) Total() int { return b.total }

func (b *Block) Remaining() int { return b.remaining }

// Results returns a copy of the recorded outcomes in trial order.
func (b *Block) Results() []Outcome {
	out := make([]Outcome, len(b.results))
	copy(out, b.results)
	return out
}

func (b *Block) Summarize() (s Summary) {
	for _, o := range b.results {
		switch Classify(o) {
		case TruePositive:
			s.TruePositive++
		case TrueNegative:
			s.TrueNegative++
		case FalsePositive:
			s.FalsePositive++
		case FalseNegative:
			s.FalseNegative++
		}
	}
	return s
}
