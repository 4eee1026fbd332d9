/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import (
	"fmt"
	"slices"
)

// Each room lists its hallways and, for the four corner rooms, the room at
// the far end of its secret passage. Each hallway lists exactly two rooms.
var adjacency = map[Cell][]Cell{
	RoomCell(Study):        {Hallway(0), Hallway(2), RoomCell(Kitchen)},
	RoomCell(Hall):         {Hallway(0), Hallway(1), Hallway(3)},
	RoomCell(Lounge):       {Hallway(1), Hallway(4), RoomCell(Conservatory)},
	RoomCell(Library):      {Hallway(2), Hallway(5), Hallway(7)},
	RoomCell(Billiard):     {Hallway(8), Hallway(3), Hallway(5), Hallway(6)},
	RoomCell(Dining):       {Hallway(9), Hallway(4), Hallway(6)},
	RoomCell(Conservatory): {Hallway(10), RoomCell(Lounge), Hallway(7)},
	RoomCell(Ballroom):     {Hallway(8), Hallway(10), Hallway(11)},
	RoomCell(Kitchen):      {Hallway(9), Hallway(11), RoomCell(Study)},

	Hallway(0):  {RoomCell(Study), RoomCell(Hall)},
	Hallway(1):  {RoomCell(Lounge), RoomCell(Hall)},
	Hallway(2):  {RoomCell(Study), RoomCell(Library)},
	Hallway(3):  {RoomCell(Billiard), RoomCell(Hall)},
	Hallway(4):  {RoomCell(Lounge), RoomCell(Dining)},
	Hallway(5):  {RoomCell(Billiard), RoomCell(Library)},
	Hallway(6):  {RoomCell(Billiard), RoomCell(Dining)},
	Hallway(7):  {RoomCell(Conservatory), RoomCell(Library)},
	Hallway(8):  {RoomCell(Ballroom), RoomCell(Billiard)},
	Hallway(9):  {RoomCell(Dining), RoomCell(Kitchen)},
	Hallway(10): {RoomCell(Ballroom), RoomCell(Conservatory)},
	Hallway(11): {RoomCell(Ballroom), RoomCell(Kitchen)},
}

// Neighbors returns the cells reachable from c in one move, in board order.
// The returned slice is a copy and may be modified by the caller.
func Neighbors(c Cell) ([]Cell, error) {
	next, ok := adjacency[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCell, c.String())
	}
	return slices.Clone(next), nil
}

// IsNeighbor reports whether to is reachable from from in one move.
func IsNeighbor(from, to Cell) (bool, error) {
	next, err := Neighbors(from)
	if err != nil {
		return false, err
	}
	return slices.Contains(next, to), nil
}
