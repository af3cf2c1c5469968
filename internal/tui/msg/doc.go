// Package msg defines the messages and command factories of the splash
// Bubbletea event loop.
//
// Every delayed transition of the sequence arrives as a [TaskFiredMsg]
// carrying the task that was scheduled, generation included, so the model
// can hand it back to the controller which drops it if the session it
// belonged to has ended.
package msg
