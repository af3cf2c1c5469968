// Package splash holds the welcome sequence state machine.
//
// The sequence has three phases that only move forward:
//
//	welcome ──activate──▶ zooming ──▶ blackScreen
//
// [State] is an immutable value updated exclusively through [Reduce]. The
// [Controller] owns the current State and turns user activation and the
// mount lifecycle into one-shot delayed [Task] values. Tasks carry the
// controller generation at the time they were scheduled; unmounting bumps the
// generation, so every task still in flight is dropped when it fires.
//
// The controller never sleeps and never starts timers. A runtime decides how
// delays elapse: the TUI maps tasks onto Bubble Tea tick commands, while
// [Timeline] advances a virtual clock for tests and the trace command.
//
// # Default Timing
//
//	T1  1000ms after mount       RevealButton
//	T2   500ms after activation  BeginZoom
//	T3  2000ms after activation  ShowBlackScreen
//
// T3 must stay strictly after T2; [NewController] rejects timings that break
// the ordering.
package splash
