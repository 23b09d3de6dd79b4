package engine

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Control identifies a group of operator inputs the sequencer enables and
// disables.
type Control int

const (
	ControlStart Control = iota
	ControlCancel
	ControlPractice
	ControlSettings
	ControlResponse
)

func (c Control) String() string {
	switch c {
	case ControlStart:
		return "start"
	case ControlCancel:
		return "cancel"
	case ControlPractice:
		return "practice"
	case ControlSettings:
		return "settings"
	case ControlResponse:
		return "response"
	}
	return fmt.Sprintf("control(%d)", int(c))
}

// Status receives what the sequencer reports outward. Calls are made from
// the sequencer goroutine and must not call back into the sequencer.
type Status interface {
	Progress(current, total int)
	Summary(number int, s Summary)
	Controls(c Control, enabled bool)
	Cancelled(number int)
}

// Statuses fans every call out to each sink in order.
type Statuses []Status

func (ss Statuses) Progress(current, total int) {
	for _, s := range ss {
		s.Progress(current, total)
	}
}

func (ss Statuses) Summary(number int, sum Summary) {
	for _, s := range ss {
		s.Summary(number, sum)
	}
}

func (ss Statuses) Controls(c Control, enabled bool) {
	for _, s := range ss {
		s.Controls(c, enabled)
	}
}

func (ss Statuses) Cancelled(number int) {
	for _, s := range ss {
		s.Cancelled(number)
	}
}

// ConsoleStatus prints progress and results to the terminal.
type ConsoleStatus struct{}

func (ConsoleStatus) Progress(current, total int) {
	if current > total {
		return
	}
	pterm.Info.Printfln("Trial %d / %d", current, total)
}

func (ConsoleStatus) Summary(number int, s Summary) {
	pterm.DefaultSection.Printfln("Experiment #%d Results", number)
	pterm.DefaultTable.WithHasHeader().WithData(SummaryTable(s)).Render()
}

func (ConsoleStatus) Controls(Control, bool) {}

func (ConsoleStatus) Cancelled(number int) {
	pterm.Warning.Printfln("Experiment #%d cancelled.", number)
}

// SummaryTable lays a summary out as rows for display.
func SummaryTable(s Summary) [][]string {
	return [][]string{
		{"Outcome", "Count"},
		{"True positive", fmt.Sprint(s.TruePositive)},
		{"True negative", fmt.Sprint(s.TrueNegative)},
		{"False positive", fmt.Sprint(s.FalsePositive)},
		{"False negative", fmt.Sprint(s.FalseNegative)},
		{"Hit rate", fmt.Sprintf("%.2f", s.HitRate())},
		{"False alarm rate", fmt.Sprintf("%.2f", s.FalseAlarmRate())},
		{"Accuracy", fmt.Sprintf("%.2f", s.Accuracy())},
	}
}
