/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"sync"

	"github.com/Seednode/clueless/board"
)

// Displacement remembers the local answer to the displaced prompt. The
// server never sees the answer itself.
//
// The answer keeps the prompt from showing again this turn, but it only
// steers the view until the player acts on it: a suggest answer matters while
// the server still flags the character as displaced, and a move answer is
// spent by the first accepted move. The answer is forgotten when the turn
// passes to someone else or the game ends. If the server clears the moved
// flag and later raises it again, the player was displaced a second time and
// is asked again.
type Displacement struct {
	mu      sync.Mutex
	answer  DisplacedChoice
	cleared bool
}

// Observe updates the answer for a newly applied snapshot.
func (d *Displacement) Observe(snap *Snapshot, slot board.Slot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if snap.GameOver() || snap.Turn.Player != slot {
		d.answer = NoChoice
		d.cleared = false
		return
	}

	if d.answer == NoChoice {
		return
	}

	character, ok := snap.Character(slot)
	if !ok {
		return
	}

	switch {
	case !snap.MovedBySuggestion[character]:
		d.cleared = true
	case d.cleared:
		d.answer = NoChoice
		d.cleared = false
	}
}

func (d *Displacement) Answer(choice DisplacedChoice) error {
	if _, err := ParseDisplacedChoice(string(choice)); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.answer = choice
	d.cleared = false

	return nil
}

// Moved records an accepted move. A move answer no longer explains an
// accusation step after this.
func (d *Displacement) Moved() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.answer != NoChoice {
		d.answer = choiceSpent
	}
}

func (d *Displacement) Current() DisplacedChoice {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.answer
}
