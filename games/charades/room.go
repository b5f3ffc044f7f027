/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"slices"
	"time"
)

// ConnID identifies one client connection for its whole lifetime.
type ConnID string

// Status is a room's lifecycle stage. Finished is terminal.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Player is a participant in a room. Identity is the connection id.
type Player struct {
	ID      ConnID `json:"id"`
	Name    string `json:"name"`
	IsReady bool   `json:"isReady"`
	IsHost  bool   `json:"isHost"`
	Score   int    `json:"score"`
}

// Room is one game session. Every field is guarded by the engine's lock.
type Room struct {
	code        string
	players     []*Player
	status      Status
	round       int
	totalRounds int
	actor       ConnID
	concept     Concept

	createdAt  time.Time
	lastActive time.Time

	// pending is the sequence number of the scheduled round start, 0 if none.
	pending uint64
	cancel  func()
}

func newRoom(code string, creator *Player, totalRounds int, now time.Time) *Room {
	creator.IsHost = true
	return &Room{
		code:        code,
		players:     []*Player{creator},
		status:      StatusWaiting,
		totalRounds: totalRounds,
		createdAt:   now,
		lastActive:  now,
	}
}

func (r *Room) Code() string         { return r.code }
func (r *Room) Status() Status       { return r.status }
func (r *Room) Round() int           { return r.round }
func (r *Room) TotalRounds() int     { return r.totalRounds }
func (r *Room) Actor() ConnID        { return r.actor }
func (r *Room) Concept() Concept     { return r.concept }
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// Players returns copies of the players in join order.
func (r *Room) Players() []Player {
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out
}

func (r *Room) player(id ConnID) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) nameTaken(name string) bool {
	return slices.ContainsFunc(r.players, func(p *Player) bool {
		return p.Name == name
	})
}

func (r *Room) host() *Player {
	for _, p := range r.players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

func (r *Room) allReady() bool {
	if len(r.players) == 0 {
		return false
	}
	for _, p := range r.players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// remove drops the player and reports whether it was present and whether it
// held the host role.
func (r *Room) remove(id ConnID) (removed, wasHost bool) {
	i := slices.IndexFunc(r.players, func(p *Player) bool { return p.ID == id })
	if i < 0 {
		return false, false
	}
	wasHost = r.players[i].IsHost
	r.players = slices.Delete(r.players, i, i+1)
	return true, wasHost
}

// promoteHost hands the host role to the first player in join order if nobody
// holds it.
func (r *Room) promoteHost() *Player {
	if len(r.players) == 0 || r.host() != nil {
		return nil
	}
	r.players[0].IsHost = true
	return r.players[0]
}

// actorFor returns the player who acts in round, by join order.
func (r *Room) actorFor(round int) *Player {
	if len(r.players) == 0 || round < 1 {
		return nil
	}
	return r.players[(round-1)%len(r.players)]
}

// RoomView is the client-facing snapshot of a room. It never includes the
// current concept.
type RoomView struct {
	Code         string   `json:"code"`
	Players      []Player `json:"players"`
	Status       Status   `json:"status"`
	CurrentRound int      `json:"currentRound"`
	TotalRounds  int      `json:"totalRounds"`
	ActorID      ConnID   `json:"currentActorId,omitempty"`
}

func (r *Room) view() RoomView {
	return RoomView{
		Code:         r.code,
		Players:      r.Players(),
		Status:       r.status,
		CurrentRound: r.round,
		TotalRounds:  r.totalRounds,
		ActorID:      r.actor,
	}
}

// Summary is the lobby listing entry for a room.
type Summary struct {
	Code        string    `json:"code"`
	Players     int       `json:"players"`
	Status      Status    `json:"status"`
	Round       int       `json:"round"`
	TotalRounds int       `json:"totalRounds"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *Room) summary() Summary {
	return Summary{
		Code:        r.code,
		Players:     len(r.players),
		Status:      r.status,
		Round:       r.round,
		TotalRounds: r.totalRounds,
		CreatedAt:   r.createdAt,
	}
}
