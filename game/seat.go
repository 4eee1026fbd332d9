/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"github.com/Seednode/clueless/session"
)

// Seat is one local player at one game: the sync loop that owns the
// snapshot, the local displaced-prompt answer, and the intent submitter.
type Seat struct {
	Identity     session.Identity
	Syncer       *Syncer
	Displacement *Displacement
	Submitter    *Submitter
}

func NewSeat(server Server, identity session.Identity, logger Logger) *Seat {
	syncer := NewSyncer(server, identity.GameID, logger)
	displacement := &Displacement{}

	syncer.OnSnapshot(func(snap *Snapshot) {
		displacement.Observe(snap, identity.Slot)
	})

	return &Seat{
		Identity:     identity,
		Syncer:       syncer,
		Displacement: displacement,
		Submitter:    NewSubmitter(server, syncer, displacement, identity, logger),
	}
}

// View resolves the latest snapshot for the local player.
func (s *Seat) View() (View, error) {
	return Resolve(s.Syncer.Snapshot(), s.Identity.Slot, s.Displacement.Current())
}
