// Package engine runs the decomposition loop: it owns the calibrated
// orientation and resolves every incoming sample into signed magnitudes
// along the body's Up/Front/Right axes.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"acc-orientation/internal/feed"
	"acc-orientation/internal/geometry/vector"
	"acc-orientation/internal/orientation"
)

type stateReq struct {
	reply chan SensorState
}

type subscribeReq struct {
	ch chan SensorState
}

type Engine struct {
	// Actor channels
	cmdCh       chan Command
	stateReqCh  chan stateReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan SensorState

	tickHz   float64
	source   feed.Source
	pipeline feed.Transform

	initUp      vector.Vec3
	initUpFront vector.Vec3
}

type Config struct {
	// Up and UpFront are the initial reference vectors. Leaving both zero
	// starts the engine uncalibrated, waiting for a CalibrateCommand.
	Up      vector.Vec3
	UpFront vector.Vec3

	TickHz float64

	// Source produces samples at the tick rate. Nil means samples arrive
	// only through MeasureCommand.
	Source feed.Source

	// Pipeline is applied to every sample before decomposition.
	Pipeline feed.Transform
}

func New(cfg Config) *Engine {
	if cfg.TickHz <= 0 {
		cfg.TickHz = 50
	}
	if cfg.Pipeline == nil {
		cfg.Pipeline = feed.NoOp
	}
	return &Engine{
		cmdCh:       make(chan Command, 128),
		stateReqCh:  make(chan stateReq, 32),
		subscribeCh: make(chan subscribeReq, 32),
		unsubCh:     make(chan chan SensorState, 32),
		tickHz:      cfg.TickHz,
		source:      cfg.Source,
		pipeline:    cfg.Pipeline,
		initUp:      cfg.Up,
		initUpFront: cfg.UpFront,
	}
}

func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		// drop if overloaded (or you can block / log)
	}
}

func (e *Engine) GetState(ctx context.Context) (SensorState, error) {
	req := stateReq{reply: make(chan SensorState, 1)}
	select {
	case e.stateReqCh <- req:
	case <-ctx.Done():
		return SensorState{}, ctx.Err()
	}

	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return SensorState{}, ctx.Err()
	}
}

func (e *Engine) Subscribe(ctx context.Context) (<-chan SensorState, func()) {
	ch := make(chan SensorState, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

func (e *Engine) Run(ctx context.Context) error {
	// Actor-owned state
	start := time.Now()
	now := start

	var orient orientation.Orientation
	calibrated := false
	paused := false
	var raw vector.Vec3
	var mag orientation.Magnitude
	var samples uint64
	warning := ""

	subs := map[chan SensorState]struct{}{}

	buildSnapshot := func(ts time.Time) SensorState {
		return SensorState{
			Raw:         raw,
			Magnitude:   mag,
			Orientation: orient,
			Calibrated:  calibrated,
			Paused:      paused,
			Samples:     samples,
			TS:          ts,
			Warning:     warning,
		}
	}

	publish := func(st SensorState) {
		for ch := range subs {
			select {
			case ch <- st:
			default:
				// slow subscriber -> drop frame
			}
		}
	}

	calibrate := func(up, upFront vector.Vec3) {
		o, err := orientation.Find(up, upFront)
		if err != nil {
			warning = "calibration rejected: " + err.Error()
			log.Warn().Err(err).Msg("calibration rejected")
			return
		}
		orient = o
		calibrated = true
		warning = ""
		log.Info().
			Float64("upMagnitude", up.Magnitude()).
			Msg("orientation calibrated")
	}

	measure := func(sample vector.Vec3, dt float64) {
		out, w := e.pipeline.Apply(dt, sample)
		raw = out
		warning = w
		if calibrated {
			mag = orientation.Magnitudes(out, orient)
		} else {
			mag = orientation.Magnitude{}
			if warning == "" {
				warning = "uncalibrated: sample not decomposed"
			}
		}
		samples++
	}

	if !e.initUp.IsZero() || !e.initUpFront.IsZero() {
		calibrate(e.initUp, e.initUpFront)
	}

	tick := time.NewTicker(time.Duration(float64(time.Second) / e.tickHz))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- buildSnapshot(now)

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.stateReqCh:
			req.reply <- buildSnapshot(now)

		case cmd := <-e.cmdCh:
			now = time.Now()
			switch c := cmd.(type) {
			case CalibrateCommand:
				calibrate(c.Up, c.UpFront)
			case MeasureCommand:
				measure(c.Sample, 0)
			case PauseCommand:
				paused = true
			case ResumeCommand:
				paused = false
			}
			publish(buildSnapshot(now))

		case t := <-tick.C:
			if e.source == nil || paused {
				continue
			}
			dt := t.Sub(now).Seconds()
			if dt <= 0 {
				dt = 1.0 / e.tickHz
			}
			now = t

			measure(e.source.Next(t.Sub(start)), dt)
			publish(buildSnapshot(now))
		}
	}
}
