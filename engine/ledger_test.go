package engine_test

import (
	"math/rand"
	"testing"

	"github.com/advanderveer/go-test"
	"github.com/iainireland/signal-detection-demo/engine"
	"github.com/pkg/errors"
)

func TestNewBlockRejectsEmpty(t *testing.T) {
	_, err := engine.NewBlock(1, 0)
	test.Equals(t, engine.ErrInvalidTrialCount, errors.Cause(err))

	_, err = engine.NewBlock(1, -3)
	test.Equals(t, engine.ErrInvalidTrialCount, errors.Cause(err))
}

func TestBlockInvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b, err := engine.NewBlock(1, engine.DefaultTrials)
	test.Ok(t, err)

	check := func() {
		test.Equals(t, b.Total(), len(b.Results())+b.Remaining())
	}
	check()

	for !b.IsDone() {
		test.Equals(t, len(b.Results())+1, b.CurrentTrial())
		test.Ok(t, b.SetExpected(rng.Intn(2) == 0))
		check()
		test.Ok(t, b.SetResult(rng.Intn(2) == 0))
		check()
	}

	test.Equals(t, engine.DefaultTrials, len(b.Results()))
	test.Equals(t, 0, b.Remaining())

	//done blocks accept no further writes
	test.Equals(t, engine.ErrBlockDone, errors.Cause(b.SetExpected(true)))
	test.Equals(t, engine.ErrNoExpectation, errors.Cause(b.SetResult(true)))
	check()
}

func TestBlockRejectsOutOfOrderWrites(t *testing.T) {
	b, err := engine.NewBlock(3, 2)
	test.Ok(t, err)

	test.Equals(t, engine.ErrNoExpectation, errors.Cause(b.SetResult(false)))

	test.Ok(t, b.SetExpected(true))
	test.Equals(t, engine.ErrExpectationPending, errors.Cause(b.SetExpected(false)))

	//the rejected write must not replace the pending value
	test.Ok(t, b.SetResult(true))
	test.Equals(t, []engine.Outcome{{Expected: true, Observed: true}}, b.Results())
	test.Equals(t, 1, b.Remaining())
}

func TestSummarizeScenario(t *testing.T) {
	b, err := engine.NewBlock(1, 7)
	test.Ok(t, err)

	tp := engine.Outcome{Expected: true, Observed: true}
	tn := engine.Outcome{Expected: false, Observed: false}
	fn := engine.Outcome{Expected: true, Observed: false}
	fp := engine.Outcome{Expected: false, Observed: true}
	for _, o := range []engine.Outcome{tp, tp, tp, tn, tn, fn, fp} {
		test.Ok(t, b.SetExpected(o.Expected))
		test.Ok(t, b.SetResult(o.Observed))
	}

	s := b.Summarize()
	test.Equals(t, engine.Summary{TruePositive: 3, TrueNegative: 2, FalsePositive: 1, FalseNegative: 1}, s)
	test.Equals(t, s, b.Summarize())
	test.Equals(t, 7, s.Total())
	test.Equals(t, 0.75, s.HitRate())
	test.Equals(t, 1.0/3.0, s.FalseAlarmRate())
	test.Assert(t, b.IsDone(), "block should be done after the last trial")
}

func TestSummaryPartitionsResults(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b, err := engine.NewBlock(1, 100)
	test.Ok(t, err)

	for i := 0; i < 63; i++ {
		test.Ok(t, b.SetExpected(rng.Intn(2) == 0))
		test.Ok(t, b.SetResult(rng.Intn(2) == 0))
	}

	var counts [4]int
	for _, o := range b.Results() {
		counts[engine.Classify(o)]++
	}
	s := b.Summarize()
	test.Equals(t, len(b.Results()), s.Total())
	test.Equals(t, [4]int{s.TruePositive, s.TrueNegative, s.FalsePositive, s.FalseNegative}, counts)
}

func TestClassify(t *testing.T) {
	test.Equals(t, engine.TruePositive, engine.Classify(engine.Outcome{Expected: true, Observed: true}))
	test.Equals(t, engine.TrueNegative, engine.Classify(engine.Outcome{Expected: false, Observed: false}))
	test.Equals(t, engine.FalseNegative, engine.Classify(engine.Outcome{Expected: true, Observed: false}))
	test.Equals(t, engine.FalsePositive, engine.Classify(engine.Outcome{Expected: false, Observed: true}))
}

func TestEmptySummaryRates(t *testing.T) {
	var s engine.Summary
	test.Equals(t, 0.0, s.HitRate())
	test.Equals(t, 0.0, s.FalseAlarmRate())
	test.Equals(t, 0.0, s.Accuracy())
}

func TestSessionNumbersBlocks(t *testing.T) {
	s := engine.NewSession()

	_, err := s.Begin(0)
	test.Equals(t, engine.ErrInvalidTrialCount, errors.Cause(err))

	b1, err := s.Begin(5)
	test.Ok(t, err)
	test.Equals(t, 1, b1.Number)
	test.Equals(t, b1, s.Active())

	_, err = s.Begin(5)
	test.Equals(t, engine.ErrBlockActive, err)

	test.Equals(t, b1, s.End())
	test.Assert(t, s.Active() == nil, "no block should be active after End")

	b2, err := s.Begin(5)
	test.Ok(t, err)
	test.Equals(t, 2, b2.Number)
}
