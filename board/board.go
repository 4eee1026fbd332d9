/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package board holds the static Clueless board: the nine rooms, the twelve
// hallways between them, the adjacency graph, and the card catalogs.
package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownCell = errors.New("unknown cell")

type Room string

const (
	Study        Room = "study"
	Hall         Room = "hall"
	Lounge       Room = "lounge"
	Library      Room = "library"
	Billiard     Room = "billiard"
	Dining       Room = "dining"
	Conservatory Room = "conservatory"
	Ballroom     Room = "ballroom"
	Kitchen      Room = "kitchen"
)

// Rooms lists every room in board order.
var Rooms = []Room{
	Study, Hall, Lounge, Library, Billiard, Dining, Conservatory, Ballroom, Kitchen,
}

// Hallways is the number of hallway cells, indexed 0 through Hallways-1.
const Hallways = 12

// Cell is either a room or a hallway. The zero value is not a valid cell.
type Cell struct {
	room    Room
	hallway int
	isHall  bool
}

func RoomCell(r Room) Cell {
	return Cell{room: r}
}

func Hallway(index int) Cell {
	return Cell{hallway: index, isHall: true}
}

func (c Cell) IsRoom() bool {
	return !c.isHall && c.room != ""
}

func (c Cell) IsHallway() bool {
	return c.isHall
}

// Room returns the room name and true if c is a room.
func (c Cell) Room() (Room, bool) {
	return c.room, c.IsRoom()
}

// HallwayIndex returns the hallway index and true if c is a hallway.
func (c Cell) HallwayIndex() (int, bool) {
	return c.hallway, c.isHall
}

func (c Cell) String() string {
	if c.isHall {
		return strconv.Itoa(c.hallway)
	}
	return string(c.room)
}

// Valid reports whether c is one of the 21 cells on the board.
func (c Cell) Valid() bool {
	_, ok := adjacency[c]
	return ok
}

// ParseCell accepts a room name or a decimal hallway index.
func ParseCell(s string) (Cell, error) {
	s = strings.TrimSpace(s)

	var c Cell
	if n, err := strconv.Atoi(s); err == nil {
		c = Hallway(n)
	} else {
		c = RoomCell(Room(strings.ToLower(s)))
	}

	if !c.Valid() {
		return Cell{}, fmt.Errorf("%w: %q", ErrUnknownCell, s)
	}

	return c, nil
}

// MarshalJSON writes rooms as names and hallways as integers, the shape the
// game server expects in a move request.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.isHall {
		return json.Marshal(c.hallway)
	}
	return json.Marshal(string(c.room))
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		parsed := Hallway(n)
		if !parsed.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownCell, n)
		}
		*c = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseCell(s)
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// MarshalText lets cells key JSON objects, as the server's board map does.
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	parsed, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Cells returns every board cell: rooms first, then hallways in index order.
func Cells() []Cell {
	cells := make([]Cell, 0, len(Rooms)+Hallways)
	for _, r := range Rooms {
		cells = append(cells, RoomCell(r))
	}
	for i := 0; i < Hallways; i++ {
		cells = append(cells, Hallway(i))
	}
	return cells
}
