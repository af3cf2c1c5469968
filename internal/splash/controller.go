package splash

import (
	"sort"
	"time"

	"github.com/Iron-Ham/splash/internal/errors"
	"github.com/Iron-Ham/splash/internal/logging"
)

// Timing holds the fixed delays of the sequence.
type Timing struct {
	// RevealDelay is measured from mount.
	RevealDelay time.Duration
	// ZoomDelay is measured from activation.
	ZoomDelay time.Duration
	// BlackScreenDelay is measured from activation, not from the zoom.
	BlackScreenDelay time.Duration
}

// DefaultTiming returns the stock 1000/500/2000ms timing.
func DefaultTiming() Timing {
	return Timing{
		RevealDelay:      1000 * time.Millisecond,
		ZoomDelay:        500 * time.Millisecond,
		BlackScreenDelay: 2000 * time.Millisecond,
	}
}

// Validate checks that every delay is positive and that the black screen
// fires strictly after the zoom begins.
func (t Timing) Validate() error {
	switch {
	case t.RevealDelay <= 0:
		return errors.NewTimingError("reveal delay", "must be positive")
	case t.ZoomDelay <= 0:
		return errors.NewTimingError("zoom delay", "must be positive")
	case t.BlackScreenDelay <= t.ZoomDelay:
		return errors.NewTimingError("black screen delay", "must be greater than zoom delay")
	}
	return nil
}

// Task is a one-shot delayed event. Generation ties the task to the session
// that scheduled it.
type Task struct {
	ID         uint64
	Generation uint64
	Delay      time.Duration
	Event      Event
}

// Controller owns the State of a splash session and schedules its
// transitions. It is not safe for concurrent use; all calls must come from
// the single goroutine that drives the view.
type Controller struct {
	timing Timing
	logger *logging.Logger

	state      State
	generation uint64
	mounted    bool
	nextID     uint64
	pending    map[uint64]Task
}

// NewController creates a Controller with the given timing. A nil logger
// discards all output.
func NewController(timing Timing, logger *logging.Logger) (*Controller, error) {
	if err := timing.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Controller{
		timing:  timing,
		logger:  logger,
		state:   InitialState(),
		pending: make(map[uint64]Task),
	}, nil
}

// Mount starts a new session and returns the reveal task. Mounting an
// already mounted controller restarts the session and invalidates every task
// of the previous one.
func (c *Controller) Mount() []Task {
	c.generation++
	c.mounted = true
	c.state = InitialState()
	clear(c.pending)

	c.log().Info("splash mounted", "generation", c.generation)
	return []Task{c.schedule(c.timing.RevealDelay, EventRevealButton)}
}

// Unmount ends the session. Pending tasks of any kind become stale.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.log().Info("splash unmounted",
		"generation", c.generation,
		"cancelled_tasks", len(c.pending),
	)
	c.mounted = false
	c.generation++
	clear(c.pending)
}

// Activate handles the user activating the welcome button. When accepted the
// button starts fading out immediately and the zoom and black screen tasks
// are returned. Activation before the button is visible, after it was already
// activated, or outside the welcome phase is ignored.
func (c *Controller) Activate() []Task {
	if !c.mounted {
		c.log().Debug("activation ignored", "reason", "not mounted")
		return nil
	}

	next, ok := Reduce(c.state, EventActivate)
	if !ok {
		c.log().Debug("activation ignored",
			"button_visible", c.state.ButtonVisible,
			"button_fading_out", c.state.ButtonFadingOut,
		)
		return nil
	}
	c.state = next
	c.log().Info("button activated", "generation", c.generation)

	return []Task{
		c.schedule(c.timing.ZoomDelay, EventBeginZoom),
		c.schedule(c.timing.BlackScreenDelay, EventShowBlackScreen),
	}
}

// Fire runs a task whose delay has elapsed. Stale tasks from an earlier
// generation, or tasks arriving after unmount, are dropped.
func (c *Controller) Fire(task Task) (Transition, bool) {
	if !c.mounted || task.Generation != c.generation {
		c.log().Debug("stale task dropped",
			"task_id", task.ID,
			"event", task.Event.String(),
			"task_generation", task.Generation,
			"generation", c.generation,
		)
		return Transition{}, false
	}
	delete(c.pending, task.ID)

	from := c.state
	to, ok := Reduce(from, task.Event)
	if !ok {
		c.log().Debug("task rejected", "event", task.Event.String())
		return Transition{}, false
	}
	c.state = to

	tr := Transition{Event: task.Event, From: from, To: to}
	if tr.PhaseChanged() {
		c.log().Info("phase changed",
			"from", from.Phase.String(),
			"to", to.Phase.String(),
			"generation", c.generation,
		)
	} else {
		c.log().Debug("state changed", "event", task.Event.String())
	}
	return tr, true
}

func (c *Controller) schedule(delay time.Duration, ev Event) Task {
	c.nextID++
	task := Task{
		ID:         c.nextID,
		Generation: c.generation,
		Delay:      delay,
		Event:      ev,
	}
	c.pending[task.ID] = task
	c.log().Debug("task scheduled",
		"task_id", task.ID,
		"event", ev.String(),
		"delay_ms", delay.Milliseconds(),
	)
	return task
}

// log tags entries with the phase the session is in when they are written.
func (c *Controller) log() *logging.Logger {
	return c.logger.WithPhase(c.state.Phase.String())
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Generation returns the current session generation.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Mounted reports whether a session is active.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Timing returns the controller timing.
func (c *Controller) Timing() Timing {
	return c.timing
}

// Pending returns the tasks of the current session that have not fired,
// ordered by ID.
func (c *Controller) Pending() []Task {
	tasks := make([]Task, 0, len(c.pending))
	for _, t := range c.pending {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}
