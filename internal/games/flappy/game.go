// Package flappy implements a flappy-style reflex game.
// The player keeps an avatar airborne through gaps in a stream of obstacles.
package flappy

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrInvalidViewport is returned by NewScene for non-positive, non-finite
// or below-minimum viewport sizes.
var ErrInvalidViewport = errors.New("invalid viewport")

// Layout holds every size derived from the viewport, in world units.
type Layout struct {
	Width, Height float64
	FloorY        float64
	AvatarSize    float64
	AvatarX       float64
	ObstacleWidth float64
	GapHeight     float64
	CapHeight     float64
	GapMargin     float64 // Clearance above and below the gap range
	Spacing       float64 // Distance travelled between spawns
}

// NewLayout derives the layout from cfg.
func NewLayout(cfg config.FlappyConfig) (Layout, error) {
	w, h := cfg.Viewport.Width, cfg.Viewport.Height
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Layout{}, fmt.Errorf("flappy: %w: %gx%g", ErrInvalidViewport, w, h)
	}
	if w < config.MinViewportWidth || h < config.MinViewportHeight {
		return Layout{}, fmt.Errorf("flappy: %w: %gx%g is below %dx%d",
			ErrInvalidViewport, w, h, config.MinViewportWidth, config.MinViewportHeight)
	}

	floorY := h * cfg.World.FloorRatio
	return Layout{
		Width:         w,
		Height:        h,
		FloorY:        floorY,
		AvatarSize:    w * cfg.Player.SizeRatio,
		AvatarX:       w * cfg.Player.XRatio,
		ObstacleWidth: w * cfg.Obstacles.WidthRatio,
		GapHeight:     h * cfg.Obstacles.GapRatio,
		CapHeight:     h * cfg.Obstacles.CapRatio,
		GapMargin:     floorY * cfg.Obstacles.MarginRatio,
		Spacing:       w * cfg.Obstacles.SpacingRatio,
	}, nil
}

// State is the scene state machine position.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// stateHandler is the behaviour of one state.
type stateHandler struct {
	tick    func(*Scene)
	primary func(*Scene)
	hud     func(*Scene, core.Surface)
}

var stateHandlers = [...]stateHandler{
	StateMenu: {
		tick:    (*Scene).animate,
		primary: (*Scene).startRun,
		hud:     (*Scene).drawMenuHUD,
	},
	StatePlaying: {
		tick:    (*Scene).tickPlaying,
		primary: (*Scene).flap,
		hud:     (*Scene).drawScoreHUD,
	},
	StateGameOver: {
		tick:    (*Scene).animate,
		primary: (*Scene).startRun,
		hud:     (*Scene).drawGameOverHUD,
	},
}

// Option configures a Scene.
type Option func(*sceneOptions)

type sceneOptions struct {
	rng        RandomSource
	store      BestScoreStore
	logger     *log.Logger
	onRunEnded func(score int)
}

// WithRandom sets the source used to place gaps.
func WithRandom(rng RandomSource) Option {
	return func(o *sceneOptions) { o.rng = rng }
}

// WithSeed places gaps from a math/rand source seeded with seed.
func WithSeed(seed int64) Option {
	return func(o *sceneOptions) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithBestScoreStore persists the best score through store.
func WithBestScoreStore(store BestScoreStore) Option {
	return func(o *sceneOptions) { o.store = store }
}

// WithLogger sets the logger for store failures and state changes.
func WithLogger(logger *log.Logger) Option {
	return func(o *sceneOptions) { o.logger = logger }
}

// OnRunEnded registers fn to receive the final score of every run.
// It is called from Update, once per run.
func OnRunEnded(fn func(score int)) Option {
	return func(o *sceneOptions) { o.onRunEnded = fn }
}

// Scene owns the state machine and composes the avatar, the obstacle stream
// and the score tracker. It is not safe for concurrent use; hosts serialise
// HandleAction, Update and Render.
type Scene struct {
	layout Layout
	anim   float64 // Animation phase step per tick
	state  State

	avatar *Avatar
	stream *ObstacleStream
	score  *ScoreTracker

	phase float64 // Cosmetic animation phase, Menu and GameOver only
	ticks int     // Ticks in the current run

	logger     *log.Logger
	onRunEnded func(score int)
}

// NewScene validates cfg and creates a scene in the Menu state.
func NewScene(cfg config.FlappyConfig, opts ...Option) (*Scene, error) {
	layout, err := NewLayout(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	o := sceneOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	score, err := NewScoreTracker(o.store)
	if err != nil {
		o.logger.Warn("continuing without saved best score", "err", err)
	}

	return &Scene{
		layout:     layout,
		anim:       cfg.World.AnimStep,
		state:      StateMenu,
		avatar:     NewAvatar(layout, cfg.Physics, cfg.Player),
		stream:     NewObstacleStream(layout, cfg.Obstacles.Speed, o.rng),
		score:      score,
		logger:     o.logger,
		onRunEnded: o.onRunEnded,
	}, nil
}

// HandleAction applies an input action immediately. Only ActionPrimary has
// an effect: it starts a run from Menu or GameOver and flaps while Playing.
func (s *Scene) HandleAction(a core.Action) {
	if a != core.ActionPrimary {
		return
	}
	stateHandlers[s.state].primary(s)
}

// Update advances the scene by one tick.
func (s *Scene) Update() {
	stateHandlers[s.state].tick(s)
}

func (s *Scene) animate() {
	s.phase += s.anim
}

func (s *Scene) startRun() {
	s.avatar.Reset()
	s.stream.Reset()
	s.score.Reset()
	s.ticks = 0
	s.state = StatePlaying
	s.logger.Debug("run started", "best", s.score.Best())
}

func (s *Scene) flap() {
	s.avatar.Jump()
}

func (s *Scene) tickPlaying() {
	s.ticks++
	s.avatar.Update()
	s.stream.Update()

	if n := s.stream.CheckScore(s.avatar.X); n > 0 {
		if err := s.score.AddPoints(n); err != nil {
			s.logger.Warn("best score not saved", "err", err)
		}
	}

	if s.stream.CheckCollision(s.avatar.Hitbox()) {
		s.endRun("collision")
		return
	}
	if s.avatar.IsOutOfBounds(s.layout.FloorY) {
		s.endRun("out of bounds")
	}
}

func (s *Scene) endRun(cause string) {
	s.state = StateGameOver
	s.logger.Debug("run ended", "cause", cause, "score", s.score.Current(), "ticks", s.ticks, "new_best", s.score.IsNewBest())
	if s.onRunEnded != nil {
		s.onRunEnded(s.score.Current())
	}
}

// State returns the current state machine position.
func (s *Scene) State() State {
	return s.state
}

// Snapshot returns a read-only summary for hosts.
func (s *Scene) Snapshot() core.GameState {
	return core.GameState{
		Score:    s.score.Current(),
		Best:     s.score.Best(),
		NewBest:  s.score.IsNewBest(),
		Playing:  s.state == StatePlaying,
		GameOver: s.state == StateGameOver,
	}
}

// Layout returns the world layout the scene was built with.
func (s *Scene) Layout() Layout {
	return s.layout
}

// Ticks returns the number of ticks in the current or last run.
func (s *Scene) Ticks() int {
	return s.ticks
}
