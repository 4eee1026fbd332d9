/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrInvalidSlot      = errors.New("invalid player slot")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownWeapon    = errors.New("unknown weapon")
)

// Slot identifies a seat at the table, player1 through player6.
type Slot string

const MaxPlayers = 6

// Slots lists every seat in turn order.
var Slots = []Slot{"player1", "player2", "player3", "player4", "player5", "player6"}

func ParseSlot(s string) (Slot, error) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Slots, slot) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	return slot, nil
}

type Character string

const (
	MissScarlet    Character = "Miss Scarlet"
	ProfessorPlum  Character = "Professor Plum"
	MrGreen        Character = "Mr. Green"
	MrsWhite       Character = "Mrs. White"
	MrsPeacock     Character = "Mrs. Peacock"
	ColonelMustard Character = "Colonel Mustard"
)

var Characters = []Character{
	MissScarlet, ProfessorPlum, MrGreen, MrsWhite, MrsPeacock, ColonelMustard,
}

// ParseCharacter matches a character name case-insensitively, so "mr. green"
// and "Mr. Green" are the same suspect.
func ParseCharacter(s string) (Character, error) {
	s = strings.TrimSpace(s)
	for _, c := range Characters {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCharacter, s)
}

type Weapon string

const (
	Rope        Weapon = "rope"
	LeadPipe    Weapon = "lead pipe"
	Knife       Weapon = "knife"
	Wrench      Weapon = "wrench"
	Candlestick Weapon = "candlestick"
	Revolver    Weapon = "revolver"
)

var Weapons = []Weapon{Rope, LeadPipe, Knife, Wrench, Candlestick, Revolver}

func ParseWeapon(s string) (Weapon, error) {
	s = strings.TrimSpace(s)
	for _, w := range Weapons {
		if strings.EqualFold(string(w), s) {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeapon, s)
}

// ParseRoom accepts a room name only; hallways are not valid in a statement.
func ParseRoom(s string) (Room, error) {
	c, err := ParseCell(s)
	if err != nil {
		return "", err
	}
	r, ok := c.Room()
	if !ok {
		return "", fmt.Errorf("%w: %q is a hallway", ErrUnknownCell, s)
	}
	return r, nil
}
