package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Phase is the step of a trial the sequencer is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFixation
	PhaseInterTrial
	PhaseStimulus
	PhaseStimulusOff
	PhaseResponse
	PhasePause
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFixation:
		return "fixation"
	case PhaseInterTrial:
		return "inter-trial"
	case PhaseStimulus:
		return "stimulus"
	case PhaseStimulusOff:
		return "stimulus-off"
	case PhaseResponse:
		return "response"
	case PhasePause:
		return "pause"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

const (
	StartDelay        = 1000 * time.Millisecond
	FixationDuration  = 250 * time.Millisecond
	TrialWindow       = 500 * time.Millisecond
	MinPreStimulus    = 100 * time.Millisecond
	PreStimulusJitter = 300 * time.Millisecond
	InterTrialPause   = 500 * time.Millisecond
	TriggerPulse      = 5 * time.Millisecond
)

type cmdKind int

const (
	cmdStart cmdKind = iota
	cmdCancel
	cmdPractice
	cmdRespond
	cmdTick
	cmdExec
)

type command struct {
	kind  cmdKind
	value bool
	gen   uint64
	phase Phase
	fn    func()
	reply chan error
}

type Option func(*Sequencer)

func WithClock(c Clock) Option { return func(s *Sequencer) { s.clock = c } }

func WithRand(r *rand.Rand) Option { return func(s *Sequencer) { s.rng = r } }

func WithLogger(l *slog.Logger) Option { return func(s *Sequencer) { s.logger = l } }

func WithEventLog(l *EventLog) Option { return func(s *Sequencer) { s.events = l } }

func WithTrigger(t Trigger) Option { return func(s *Sequencer) { s.trigger = t } }

func WithStatus(st Status) Option { return func(s *Sequencer) { s.status = st } }

// Sequencer runs blocks of signal detection trials. All state is owned by
// the goroutine executing Run; the exported methods hand commands to it and
// wait for the outcome. Scheduled phases carry the generation they were
// scheduled in and are dropped once the generation has moved on.
type Sequencer struct {
	config  ConfigSource
	canvas  Canvas
	status  Status
	clock   Clock
	rng     *rand.Rand
	logger  *slog.Logger
	events  *EventLog
	trigger Trigger

	cmds chan command
	done chan struct{}

	session  *Session
	phase    Phase
	gen      uint64
	timer    Timer
	params   Params
	practice bool
	show     bool
	delay    time.Duration
	started  time.Time
	due      time.Time
}

func NewSequencer(config ConfigSource, surface Surface, opts ...Option) *Sequencer {
	s := &Sequencer{
		config:  config,
		canvas:  Canvas{Surface: surface},
		status:  Statuses{},
		clock:   WallClock{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  slog.Default(),
		trigger: nopTrigger{},
		cmds:    make(chan command),
		done:    make(chan struct{}),
		session: NewSession(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes commands and timer events until ctx is done.
func (s *Sequencer) Run(ctx context.Context) error {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			s.bump()
			return ctx.Err()
		case c := <-s.cmds:
			c.reply <- s.handle(c)
		}
	}
}

func (s *Sequencer) send(c command) error {
	c.reply = make(chan error, 1)
	select {
	case s.cmds <- c:
	case <-s.done:
		return ErrStopped
	}

	select {
	case err := <-c.reply:
		return err
	case <-s.done:
		select {
		case err := <-c.reply:
			return err
		default:
			return ErrStopped
		}
	}
}

// Start begins a new block with the current configuration.
func (s *Sequencer) Start() error { return s.send(command{kind: cmdStart}) }

// Cancel drops the running block without summarizing it.
func (s *Sequencer) Cancel() error { return s.send(command{kind: cmdCancel}) }

// Practice shows a single trial that always contains a signal and records
// nothing.
func (s *Sequencer) Practice() error { return s.send(command{kind: cmdPractice}) }

// Respond records whether the subject saw a signal.
func (s *Sequencer) Respond(saw bool) error { return s.send(command{kind: cmdRespond, value: saw}) }

func (s *Sequencer) Phase() (p Phase) {
	s.send(command{kind: cmdExec, fn: func() { p = s.phase }})
	return p
}

// Active returns the number of the running block, or 0.
func (s *Sequencer) Active() (number int) {
	s.send(command{kind: cmdExec, fn: func() {
		if b := s.session.Active(); b != nil {
			number = b.Number
		}
	}})
	return number
}

func (s *Sequencer) handle(c command) error {
	switch c.kind {
	case cmdStart:
		return s.start()
	case cmdCancel:
		return s.cancel()
	case cmdPractice:
		return s.practiceRun()
	case cmdRespond:
		return s.respond(c.value)
	case cmdTick:
		if c.gen != s.gen {
			return nil
		}
		s.timer = nil
		s.enter(c.phase)
	case cmdExec:
		c.fn()
	}
	return nil
}

func (s *Sequencer) readParams() (Params, error) {
	p := s.config.Params()
	if err := p.Validate(); err != nil {
		return p, err
	}
	if _, side := s.canvas.Square(); p.StimulusSize >= side {
		return p, errors.Wrapf(ErrTargetTooLarge, "size %d, side %d", p.StimulusSize, side)
	}
	return p, nil
}

func (s *Sequencer) start() error {
	if s.session.Active() != nil {
		return ErrBlockActive
	}
	p, err := s.readParams()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	b, err := s.session.Begin(p.TotalTrials)
	if err != nil {
		return err
	}

	s.bump()
	s.params = p
	s.practice = false
	s.started = s.clock.Now()
	s.setControls(false)

	s.logger.Info("beginning experiment",
		"block", b.Number,
		"stimulus_color", FormatColor(p.StimulusColor),
		"background_color", FormatColor(p.BackgroundColor),
		"duration", p.StimulusDuration,
		"size", p.StimulusSize,
		"trials", p.TotalTrials)
	if worst := TrialWindow - MinPreStimulus - PreStimulusJitter; p.StimulusDuration > worst {
		s.logger.Warn("stimulus duration overruns the trial window, response window opens at stimulus offset",
			"duration", p.StimulusDuration, "budget", worst)
	}
	s.event(EventBlockStart, "", s.started)

	s.status.Progress(b.CurrentTrial(), b.Total())
	s.schedule(StartDelay, PhaseFixation)
	return nil
}

func (s *Sequencer) practiceRun() error {
	if s.session.Active() != nil {
		return ErrBlockActive
	}
	p, err := s.readParams()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	s.bump()
	s.params = p
	s.practice = true
	s.started = s.clock.Now()
	s.due = s.started
	s.setControls(false)
	s.status.Controls(ControlCancel, false)
	s.enter(PhaseFixation)
	return nil
}

func (s *Sequencer) cancel() error {
	b := s.session.Active()
	if b == nil {
		return ErrNoActiveBlock
	}
	s.logger.Info("experiment cancelled", "block", b.Number, "trial", b.CurrentTrial(), "phase", s.phase)
	s.event(EventBlockCancel, s.phase.String(), s.clock.Now())
	s.finish()
	s.status.Cancelled(b.Number)
	return nil
}

// abort ends a block whose ledger rejected a write.
func (s *Sequencer) abort(err error) {
	b := s.session.Active()
	s.logger.Error("aborting experiment", "block", b.Number, "phase", s.phase, "err", err)
	s.event(EventBlockAbort, err.Error(), s.clock.Now())
	s.finish()
	s.status.Cancelled(b.Number)
}

func (s *Sequencer) respond(saw bool) error {
	b := s.session.Active()
	if b == nil || s.phase != PhaseResponse {
		return ErrNotAwaitingResponse
	}
	s.status.Controls(ControlResponse, false)

	trial := b.CurrentTrial()
	if err := b.SetResult(saw); err != nil {
		s.abort(err)
		return err
	}
	s.pulse(LineResponse)

	last := b.Results()[trial-1]
	now := s.clock.Now()
	s.logEvent(b.Number, trial, EventResponse, Classify(last).String(), now)

	if b.IsDone() {
		sum := b.Summarize()
		s.logger.Info("experiment complete", "block", b.Number,
			"tp", sum.TruePositive, "tn", sum.TrueNegative,
			"fp", sum.FalsePositive, "fn", sum.FalseNegative)
		s.logEvent(b.Number, trial, EventBlockEnd, "", now)
		s.status.Summary(b.Number, sum)
		s.finish()
		return nil
	}

	s.status.Progress(b.CurrentTrial(), b.Total())
	s.phase = PhasePause
	s.schedule(InterTrialPause, PhaseFixation)
	return nil
}

func (s *Sequencer) enter(p Phase) {
	s.phase = p
	s.logger.Debug("phase", "phase", p, "gen", s.gen, "practice", s.practice)
	switch p {
	case PhaseFixation:
		s.fixation()
	case PhaseInterTrial:
		s.interTrial()
	case PhaseStimulus:
		s.stimulus()
	case PhaseStimulusOff:
		s.stimulusOff()
	case PhaseResponse:
		s.responseWindow()
	}
}

func (s *Sequencer) fixation() {
	s.canvas.Clear(s.params.BackgroundColor)
	s.canvas.Cross(s.params.FixationColor)
	s.show = s.session.Active() == nil || s.rng.Float64() < 0.5
	s.event(EventFixationOnset, "", s.due)
	s.schedule(FixationDuration, PhaseInterTrial)
}

func (s *Sequencer) interTrial() {
	s.canvas.Clear(s.params.BackgroundColor)
	if b := s.session.Active(); b != nil {
		if err := b.SetExpected(s.show); err != nil {
			s.abort(err)
			return
		}
	}

	if !s.show {
		s.schedule(TrialWindow, PhaseResponse)
		return
	}
	s.delay = MinPreStimulus + time.Duration(s.rng.Int63n(int64(PreStimulusJitter/time.Millisecond)))*time.Millisecond
	s.schedule(s.delay, PhaseStimulus)
}

func (s *Sequencer) stimulus() {
	_, side := s.canvas.Square()
	x, y := TargetPosition(s.rng, side, s.params.StimulusSize)

	s.canvas.Clear(s.params.BackgroundColor)
	s.canvas.Disc(x, y, s.params.StimulusSize, s.params.StimulusColor)
	s.trigger.Set(LineStimulus)
	s.event(EventStimulusOnset, fmt.Sprintf("%d,%d", x, y), s.due)
	s.schedule(s.params.StimulusDuration, PhaseStimulusOff)
}

func (s *Sequencer) stimulusOff() {
	s.canvas.Clear(s.params.BackgroundColor)
	s.trigger.Unset(LineStimulus)
	s.event(EventStimulusOffset, "", s.due)
	s.schedule(PostStimulusWait(s.delay, s.params.StimulusDuration), PhaseResponse)
}

func (s *Sequencer) responseWindow() {
	if s.practice || s.session.Active() == nil {
		s.practice = false
		s.phase = PhaseIdle
		s.setControls(true)
		return
	}
	s.event(EventResponseWindow, "", s.due)
	s.status.Controls(ControlResponse, true)
}

// PostStimulusWait is what is left of the trial window after the
// pre-stimulus delay and the stimulus itself, never less than zero.
func PostStimulusWait(delay, duration time.Duration) time.Duration {
	rest := TrialWindow - delay - duration
	if rest < 0 {
		return 0
	}
	return rest
}

// finish drops the active block and returns the controls to idle.
func (s *Sequencer) finish() {
	s.bump()
	s.session.End()
	s.phase = PhaseIdle
	s.practice = false
	s.canvas.Clear(s.params.BackgroundColor)
	s.trigger.Unset(LineStimulus)
	s.setControls(true)
}

func (s *Sequencer) setControls(idle bool) {
	s.status.Controls(ControlStart, idle)
	s.status.Controls(ControlPractice, idle)
	s.status.Controls(ControlSettings, idle)
	s.status.Controls(ControlCancel, !idle)
	s.status.Controls(ControlResponse, false)
}

// bump invalidates every phase scheduled so far.
func (s *Sequencer) bump() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Sequencer) schedule(d time.Duration, next Phase) {
	gen := s.gen
	s.due = s.clock.Now().Add(d)
	s.timer = s.clock.AfterFunc(d, func() {
		s.send(command{kind: cmdTick, gen: gen, phase: next})
	})
}

func (s *Sequencer) pulse(line string) {
	s.trigger.Set(line)
	s.clock.AfterFunc(TriggerPulse, func() {
		s.send(command{kind: cmdExec, fn: func() { s.trigger.Unset(line) }})
	})
}

func (s *Sequencer) event(etype, label string, intended time.Time) {
	var block, trial int
	if b := s.session.Active(); b != nil {
		block, trial = b.Number, b.CurrentTrial()
	}
	s.logEvent(block, trial, etype, label, intended)
}

func (s *Sequencer) logEvent(block, trial int, etype, label string, intended time.Time) {
	if s.events == nil {
		return
	}
	s.events.Log(block, trial, sinceMS(s.started, intended), sinceMS(s.started, s.clock.Now()), etype, label)
}

func sinceMS(from, t time.Time) uint64 {
	d := t.Sub(from)
	if d < 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}
