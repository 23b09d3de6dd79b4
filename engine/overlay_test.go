package engine_test

import (
	"strings"
	"testing"

	"github.com/advanderveer/go-test"
	"github.com/iainireland/signal-detection-demo/engine"
)

func TestOverlayFollowsStatus(t *testing.T) {
	o := engine.NewOverlay()
	p := engine.DefaultConfig().Params()

	test.Assert(t, o.Enabled(engine.ControlStart), "start should be enabled initially")
	test.Assert(t, !o.Enabled(engine.ControlCancel), "cancel should be disabled initially")
	test.Equals(t, "Duration 250ms (UP/DOWN)  Size 20px (LEFT/RIGHT)", o.Lines(p)[1])

	for _, c := range []engine.Control{engine.ControlStart, engine.ControlPractice, engine.ControlSettings} {
		o.Controls(c, false)
	}
	o.Controls(engine.ControlCancel, true)
	o.Progress(4, 40)
	test.Equals(t, 0, len(o.Lines(p)))

	o.Controls(engine.ControlResponse, true)
	test.Equals(t, []string{"Trial 4 / 40", "ESC cancel", "Did you see it? Y / N"}, o.Lines(p))

	for _, c := range []engine.Control{engine.ControlStart, engine.ControlPractice, engine.ControlSettings} {
		o.Controls(c, true)
	}
	o.Controls(engine.ControlCancel, false)
	o.Controls(engine.ControlResponse, false)
	o.Summary(2, engine.Summary{TruePositive: 3, TrueNegative: 2, FalsePositive: 1, FalseNegative: 1})
	lines := o.Lines(p)
	test.Equals(t, "Experiment #2 Results", lines[0])
	test.Equals(t, "True positive: 3", lines[1])

	o.Cancelled(3)
	test.Assert(t, strings.HasPrefix(o.Lines(p)[0], "Experiment #3 cancelled"), "cancel notice expected")
}
