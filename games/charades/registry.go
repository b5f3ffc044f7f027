/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"slices"
	"strings"
	"time"
)

// Registry holds every live room keyed by code. It is not safe for concurrent
// use on its own; the engine serializes all access.
type Registry struct {
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Create registers a waiting room with creator as its only player and host.
func (reg *Registry) Create(code string, creator *Player, totalRounds int, now time.Time) (*Room, error) {
	if strings.TrimSpace(code) == "" || creator == nil || strings.TrimSpace(creator.Name) == "" {
		return nil, ErrValidation
	}
	if _, exists := reg.rooms[code]; exists {
		return nil, ErrDuplicateCode
	}

	room := newRoom(code, creator, totalRounds, now)
	reg.rooms[code] = room

	return room, nil
}

func (reg *Registry) Get(code string) (*Room, bool) {
	room, ok := reg.rooms[code]
	return room, ok
}

// Remove deletes the room. Removing an unknown code is a no-op.
func (reg *Registry) Remove(code string) {
	delete(reg.rooms, code)
}

func (reg *Registry) Len() int {
	return len(reg.rooms)
}

// List summarizes every room, sorted by code.
func (reg *Registry) List() []Summary {
	out := make([]Summary, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		out = append(out, room.summary())
	}
	slices.SortFunc(out, func(a, b Summary) int {
		return strings.Compare(a.Code, b.Code)
	})
	return out
}

// Idle returns the codes of rooms with no activity since cutoff.
func (reg *Registry) Idle(cutoff time.Time) []string {
	var codes []string
	for code, room := range reg.rooms {
		if room.lastActive.Before(cutoff) {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return codes
}
