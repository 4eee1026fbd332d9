/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"fmt"

	"github.com/Seednode/clueless/board"
)

// ViewState is what the local player may do right now.
type ViewState string

const (
	GameOver               ViewState = "game_over"
	WaitingForOther        ViewState = "waiting"
	UsernameRequired       ViewState = "username_required"
	DisplacedChoicePending ViewState = "displaced_choice"
	ActionableMove         ViewState = "move"
	ActionableSuggest      ViewState = "suggest"
	ActionableAccuse       ViewState = "accuse"
)

// DisplacedChoice answers the prompt shown to a player whose character was
// pulled into a room by someone else's suggestion.
type DisplacedChoice string

const (
	NoChoice      DisplacedChoice = ""
	ChooseSuggest DisplacedChoice = "suggest"
	ChooseMove    DisplacedChoice = "move"

	// choiceSpent is an answer the player has already acted on.
	choiceSpent DisplacedChoice = "spent"
)

func ParseDisplacedChoice(s string) (DisplacedChoice, error) {
	switch c := DisplacedChoice(s); c {
	case ChooseSuggest, ChooseMove:
		return c, nil
	}
	return NoChoice, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
}

const (
	someoneElse   = "someone else"
	noValidMoves  = "no valid moves — do you want to accuse?"
	nobodyWon     = "Nobody solved the case."
	chooseName    = "Choose a username before you play."
	displacedText = "You were moved here by another player's suggestion. Make a suggestion here, or move?"
)

// View is the resolved state plus what a surface needs to present it.
type View struct {
	State   ViewState `json:"state"`
	Message string    `json:"message"`

	ActivePlayer board.Slot `json:"active_player,omitempty"`
	ActiveName   string     `json:"active_name,omitempty"`

	Character board.Character `json:"character,omitempty"`
	Location  *board.Cell     `json:"location,omitempty"`

	// Destinations is set for ActionableMove.
	Destinations []board.Cell `json:"destinations,omitempty"`
	// Room is set for ActionableSuggest when the player stands in a room.
	Room board.Room `json:"room,omitempty"`
	// Options is set for DisplacedChoicePending.
	Options []DisplacedChoice `json:"options,omitempty"`

	Winner board.Slot `json:"winner,omitempty"`
	YouWon bool       `json:"you_won,omitempty"`
}

// Resolve decides what slot may do given snap. answer is the player's reply
// to the displaced prompt this turn, or NoChoice. A suggest answer only holds
// while snap still flags the character as displaced.
//
// Checks run in order: game over, someone else's turn, missing username,
// pending displaced choice, then the server's phase.
func Resolve(snap *Snapshot, slot board.Slot, answer DisplacedChoice) (View, error) {
	if snap == nil {
		return View{}, ErrNoSnapshot
	}

	if snap.GameOver() {
		return resolveGameOver(snap, slot), nil
	}

	active := snap.Turn.Player
	if active != slot {
		name, ok := snap.Username(active)
		if !ok {
			name = someoneElse
		}
		return View{
			State:        WaitingForOther,
			Message:      fmt.Sprintf("It is %s's turn.", name),
			ActivePlayer: active,
			ActiveName:   name,
		}, nil
	}

	name, ok := snap.Username(slot)
	if !ok {
		return View{
			State:        UsernameRequired,
			Message:      chooseName,
			ActivePlayer: active,
		}, nil
	}

	character, ok := snap.Character(slot)
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrNoCharacter, slot)
	}

	view := View{
		ActivePlayer: active,
		ActiveName:   name,
		Character:    character,
	}

	location, located := snap.Locate(character)
	if located {
		view.Location = &location
	}

	displaced := snap.MovedBySuggestion[character]

	if displaced && answer == NoChoice {
		view.State = DisplacedChoicePending
		view.Message = displacedText
		view.Options = []DisplacedChoice{ChooseSuggest, ChooseMove}
		return view, nil
	}

	phase := snap.Turn.Phase
	if displaced && answer == ChooseSuggest {
		phase = PhaseSuggest
	}

	switch phase {
	case PhaseMove:
		if !located {
			return View{}, fmt.Errorf("%w: %s", ErrNoCurrentLocation, character)
		}
		destinations, err := board.Neighbors(location)
		if err != nil {
			return View{}, err
		}
		view.State = ActionableMove
		view.Message = "It is your turn. Where do you want to move?"
		view.Destinations = destinations

	case PhaseSuggest:
		view.State = ActionableSuggest
		if room, ok := location.Room(); located && ok {
			view.Room = room
			view.Message = fmt.Sprintf("Make a suggestion in the %s.", room)
		} else {
			view.Message = "Make a suggestion."
		}

	case PhaseAccuse:
		view.State = ActionableAccuse
		view.Message = "Do you want to make an accusation?"
		if answer == ChooseMove {
			view.Message = noValidMoves
		}

	default:
		return View{}, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}

	return view, nil
}

func resolveGameOver(snap *Snapshot, slot board.Slot) View {
	view := View{
		State:  GameOver,
		Winner: snap.Winner(),
	}

	switch {
	case view.Winner == "":
		view.Message = nobodyWon
	case view.Winner == slot:
		view.YouWon = true
		view.Message = "You won!"
	default:
		name, ok := snap.Username(view.Winner)
		if !ok {
			name = string(view.Winner)
		}
		view.Message = fmt.Sprintf("%s is the winner!", name)
	}

	return view
}
