package splash

import (
	"sort"
	"time"
)

// Step is a transition stamped with the virtual time it happened at.
type Step struct {
	At time.Duration
	Transition
}

type scheduledTask struct {
	due  time.Duration
	task Task
}

// Timeline drives a Controller on a virtual clock. Delays elapse only when
// Advance is called, which makes the sequence reproducible to the
// millisecond.
type Timeline struct {
	ctrl  *Controller
	now   time.Duration
	queue []scheduledTask
}

// NewTimeline wraps ctrl with a virtual clock starting at zero.
func NewTimeline(ctrl *Controller) *Timeline {
	return &Timeline{ctrl: ctrl}
}

// Mount mounts the controller at the current virtual time.
func (tl *Timeline) Mount() {
	tl.enqueue(tl.ctrl.Mount())
}

// Activate activates the button at the current virtual time and reports
// whether the activation was accepted.
func (tl *Timeline) Activate() bool {
	tasks := tl.ctrl.Activate()
	tl.enqueue(tasks)
	return len(tasks) > 0
}

// Unmount unmounts the controller. Queued tasks stay queued and are dropped
// by the controller when their time comes.
func (tl *Timeline) Unmount() {
	tl.ctrl.Unmount()
}

// Advance moves the clock forward by d, firing every task that falls due,
// and returns the accepted transitions in order.
func (tl *Timeline) Advance(d time.Duration) []Step {
	return tl.AdvanceTo(tl.now + d)
}

// AdvanceTo moves the clock to the absolute virtual time t. Times in the
// past are ignored.
func (tl *Timeline) AdvanceTo(t time.Duration) []Step {
	var steps []Step
	for len(tl.queue) > 0 && tl.queue[0].due <= t {
		next := tl.queue[0]
		tl.queue = tl.queue[1:]
		tl.now = next.due
		if tr, ok := tl.ctrl.Fire(next.task); ok {
			steps = append(steps, Step{At: tl.now, Transition: tr})
		}
	}
	if t > tl.now {
		tl.now = t
	}
	return steps
}

// Now returns the current virtual time.
func (tl *Timeline) Now() time.Duration {
	return tl.now
}

// State returns the controller state.
func (tl *Timeline) State() State {
	return tl.ctrl.State()
}

// Queued returns the number of tasks waiting on the clock, stale ones
// included.
func (tl *Timeline) Queued() int {
	return len(tl.queue)
}

func (tl *Timeline) enqueue(tasks []Task) {
	for _, task := range tasks {
		tl.queue = append(tl.queue, scheduledTask{due: tl.now + task.Delay, task: task})
	}
	sort.SliceStable(tl.queue, func(i, j int) bool {
		if tl.queue[i].due != tl.queue[j].due {
			return tl.queue[i].due < tl.queue[j].due
		}
		return tl.queue[i].task.ID < tl.queue[j].task.ID
	})
}
