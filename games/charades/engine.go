/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package charades runs charades rooms: one player acts out a secret emoji
// each round while the others type guesses. The Engine owns all room state and
// talks to clients only through a Notifier.
package charades

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTotalRounds     = 12
	DefaultTransitionDelay = 2 * time.Second
)

// Notifier delivers events to clients. Implementations must not block and
// must not call back into the Engine.
type Notifier interface {
	SendTo(conn ConnID, event string, payload any)
	Broadcast(code string, event string, payload any)
	JoinChannel(conn ConnID, code string)
	LeaveChannel(conn ConnID, code string)
}

// Options configure an Engine. Zero values select the defaults.
type Options struct {
	TotalRounds     int
	TransitionDelay time.Duration
	Catalog         *Catalog
	Scheduler       Scheduler
	Rand            *rand.Rand
	Now             func() time.Time
}

// Engine serializes every room mutation behind a single lock, so handlers run
// to completion one at a time. Handlers never block: Notifier calls are
// fire-and-forget.
type Engine struct {
	mu sync.Mutex

	rooms  *Registry
	conns  map[ConnID]string // connection -> room code, only while in a room
	notify Notifier

	catalog     *Catalog
	sched       Scheduler
	rng         *rand.Rand
	now         func() time.Time
	totalRounds int
	delay       time.Duration

	seq uint64
}

func NewEngine(notify Notifier, rooms *Registry, opts Options) *Engine {
	e := &Engine{
		rooms:       rooms,
		conns:       make(map[ConnID]string),
		notify:      notify,
		catalog:     opts.Catalog,
		sched:       opts.Scheduler,
		rng:         opts.Rand,
		now:         opts.Now,
		totalRounds: opts.TotalRounds,
		delay:       opts.TransitionDelay,
	}
	if e.rooms == nil {
		e.rooms = NewRegistry()
	}
	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	if e.sched == nil {
		e.sched = TimeScheduler()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.totalRounds < 1 {
		e.totalRounds = DefaultTotalRounds
	}
	if e.delay <= 0 {
		e.delay = DefaultTransitionDelay
	}

	return e
}

// CreateGame registers a new room with conn as its host. A connection already
// in another room leaves it first.
func (e *Engine) CreateGame(conn ConnID, code, name string) error {
	if blank(code) || blank(name) {
		return ErrValidation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.rooms.Get(code); exists {
		return ErrDuplicateCode
	}

	e.leaveLocked(conn)

	player := &Player{ID: conn, Name: name}
	room, err := e.rooms.Create(code, player, e.totalRounds, e.now())
	if err != nil {
		return err
	}
	e.conns[conn] = code
	e.notify.JoinChannel(conn, code)

	log.Info().Str("module", "games.charades").Str("code", code).Str("conn", string(conn)).Str("player", name).Msg("game created")

	e.notify.SendTo(conn, EventGameJoined, GameJoined{
		GameCode: code,
		Player:   *player,
		GameRoom: room.view(),
	})

	return nil
}

// JoinGame adds conn to a waiting room under name.
func (e *Engine) JoinGame(conn ConnID, code, name string) error {
	if blank(code) || blank(name) {
		return ErrValidation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrNotFound
	}
	if current, in := e.conns[conn]; in && current == code {
		return newError(CodeValidation, "You are already in this game.")
	}
	if room.nameTaken(name) {
		return ErrDuplicateName
	}
	if room.status != StatusWaiting {
		return ErrGameInProgress
	}

	e.leaveLocked(conn)

	player := &Player{ID: conn, Name: name}
	room.players = append(room.players, player)
	room.lastActive = e.now()
	e.conns[conn] = code
	e.notify.JoinChannel(conn, code)

	log.Info().Str("module", "games.charades").Str("code", code).Str("conn", string(conn)).Str("player", name).Msg("player joined")

	e.notify.SendTo(conn, EventGameJoined, GameJoined{
		GameCode: code,
		Player:   *player,
		GameRoom: room.view(),
	})
	e.notify.Broadcast(code, EventPlayerJoined, PlayersUpdate{Players: room.Players()})

	return nil
}

// ReadyUp sets the player's ready flag. Unknown players and rooms that are no
// longer waiting are ignored.
func (e *Engine) ReadyUp(conn ConnID, code string, ready bool) error {
	if blank(code) {
		return ErrValidation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrNotFound
	}
	player := room.player(conn)
	if player == nil || room.status != StatusWaiting {
		return nil
	}

	player.IsReady = ready
	room.lastActive = e.now()

	e.notify.Broadcast(code, EventPlayerReady, PlayersUpdate{Players: room.Players()})

	return nil
}

// StartGame moves a waiting room to round one. Only the host may start, and
// only once everyone is ready.
func (e *Engine) StartGame(conn ConnID, code string) error {
	if blank(code) {
		return ErrValidation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrNotFound
	}
	if host := room.host(); host == nil || host.ID != conn {
		return errNotHostStart
	}
	if room.status != StatusWaiting {
		return ErrGameInProgress
	}
	if !room.allReady() {
		return ErrNotReady
	}

	room.status = StatusPlaying
	room.round = 1
	room.lastActive = e.now()

	log.Info().Str("module", "games.charades").Str("code", code).Int("players", len(room.players)).Int("rounds", room.totalRounds).Msg("game started")

	e.notify.Broadcast(code, EventGameStarted, GameStarted{})
	e.startRoundLocked(room)

	return nil
}

// SubmitGuess scores a correct guess and advances the round. Wrong guesses,
// guesses outside a live round and the actor's own guesses are dropped
// without a reply so the answer never leaks.
func (e *Engine) SubmitGuess(conn ConnID, code, guess string) error {
	if blank(code) {
		return ErrValidation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrNotFound
	}
	if room.status != StatusPlaying || room.concept == "" || guess == "" {
		return nil
	}
	player := room.player(conn)
	if player == nil || player.ID == room.actor {
		return nil
	}

	room.lastActive = e.now()

	if !e.catalog.Matches(room.concept, guess) {
		return nil
	}

	player.Score++

	log.Debug().Str("module", "games.charades").Str("code", code).Str("player", player.Name).Int("round", room.round).Msg("correct guess")

	e.notify.Broadcast(code, EventCorrectGuess, CorrectGuess{
		Player:  player.Name,
		Concept: room.concept,
	})
	e.advanceLocked(room)

	return nil
}

// SkipRound lets the host move on without awarding points.
func (e *Engine) SkipRound(conn ConnID, code string) error {
	if blank(code) {
		return ErrValidation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrNotFound
	}
	if host := room.host(); host == nil || host.ID != conn {
		return errNotHostSkip
	}
	if room.status != StatusPlaying {
		return errNotPlaying
	}
	if room.pending != 0 {
		return nil
	}

	room.lastActive = e.now()

	log.Debug().Str("module", "games.charades").Str("code", code).Int("round", room.round).Msg("round skipped")

	e.advanceLocked(room)

	return nil
}

// Chat relays a message to everyone in the room. No state changes.
func (e *Engine) Chat(conn ConnID, code, sender, message string) error {
	if blank(code) || blank(message) {
		return ErrValidation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok {
		return ErrNotFound
	}
	if blank(sender) {
		p := room.player(conn)
		if p == nil {
			return ErrValidation
		}
		sender = p.Name
	}

	e.notify.Broadcast(code, EventChatMessage, ChatMessage{
		SenderName: sender,
		Message:    message,
	})

	return nil
}

// Connect records a new connection. It exists so the gateway lifecycle is
// symmetrical; connections only carry state once they are in a room.
func (e *Engine) Connect(conn ConnID) {
	log.Debug().Str("module", "games.charades").Str("conn", string(conn)).Msg("connected")
}

// Disconnect removes conn from its room, migrating the host role and deleting
// the room once it is empty.
func (e *Engine) Disconnect(conn ConnID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.leaveLocked(conn)

	log.Debug().Str("module", "games.charades").Str("conn", string(conn)).Msg("disconnected")
}

func (e *Engine) leaveLocked(conn ConnID) {
	code, ok := e.conns[conn]
	if !ok {
		return
	}
	delete(e.conns, conn)
	e.notify.LeaveChannel(conn, code)

	room, ok := e.rooms.Get(code)
	if !ok {
		return
	}

	wasActor := room.actor == conn
	removed, wasHost := room.remove(conn)
	if !removed {
		return
	}
	room.lastActive = e.now()

	log.Info().Str("module", "games.charades").Str("code", code).Str("conn", string(conn)).Int("remaining", len(room.players)).Msg("player left")

	if len(room.players) == 0 {
		e.deleteRoomLocked(room)
		return
	}

	var newHost *Player
	if wasHost {
		newHost = room.promoteHost()
	}

	e.notify.Broadcast(code, EventPlayerLeft, PlayersUpdate{Players: room.Players()})

	if newHost != nil {
		log.Info().Str("module", "games.charades").Str("code", code).Str("host", newHost.Name).Msg("host changed")
		e.notify.Broadcast(code, EventHostChanged, HostChanged{NewHostID: newHost.ID})
	}

	// the actor walked out mid-round: same round, next actor in rotation
	if wasActor && room.status == StatusPlaying && room.pending == 0 {
		e.startRoundLocked(room)
	}
}

func (e *Engine) deleteRoomLocked(room *Room) {
	e.cancelPendingLocked(room)
	for _, p := range room.players {
		delete(e.conns, p.ID)
		e.notify.LeaveChannel(p.ID, room.code)
	}
	room.players = nil
	e.rooms.Remove(room.code)

	log.Info().Str("module", "games.charades").Str("code", room.code).Msg("game removed")
}

// startRoundLocked picks the actor for the current round by join order, draws
// a concept, announces the round and whispers the concept to the actor.
func (e *Engine) startRoundLocked(room *Room) {
	actor := room.actorFor(room.round)
	if actor == nil {
		return
	}

	room.concept = e.catalog.Draw(e.rng)
	room.actor = actor.ID

	e.notify.Broadcast(room.code, EventRoundStarted, RoundStarted{
		Round:   room.round,
		ActorID: actor.ID,
	})
	e.notify.SendTo(actor.ID, EventEmoji, Emoji{Concept: room.concept})
}

// advanceLocked ends the current round. The last round finishes the game;
// any other schedules the next round start after the transition delay.
func (e *Engine) advanceLocked(room *Room) {
	room.concept = ""
	room.actor = ""

	if room.round >= room.totalRounds {
		room.status = StatusFinished
		e.cancelPendingLocked(room)

		log.Info().Str("module", "games.charades").Str("code", room.code).Msg("game ended")

		e.notify.Broadcast(room.code, EventGameEnded, PlayersUpdate{Players: room.Players()})
		return
	}

	room.round++
	e.notify.Broadcast(room.code, EventRoundTransition, RoundTransition{NextRound: room.round})
	e.scheduleRoundLocked(room)
}

func (e *Engine) scheduleRoundLocked(room *Room) {
	e.cancelPendingLocked(room)

	e.seq++
	seq, code := e.seq, room.code
	stop := e.sched.AfterFunc(e.delay, func() {
		e.fireRound(code, seq)
	})
	room.pending = seq
	room.cancel = func() { stop() }
}

// fireRound runs when a scheduled round start comes due. The room is looked up
// again by code: it may have been deleted, or the task superseded, since.
func (e *Engine) fireRound(code string, seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok || room.pending != seq || room.status != StatusPlaying {
		return
	}
	room.pending = 0
	room.cancel = nil

	e.startRoundLocked(room)
}

func (e *Engine) cancelPendingLocked(room *Room) {
	if room.cancel != nil {
		room.cancel()
	}
	room.pending = 0
	room.cancel = nil
}

// Rooms lists every live room.
func (e *Engine) Rooms() []Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.rooms.List()
}

// Room returns the public view of one room.
func (e *Engine) Room(code string) (RoomView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms.Get(code)
	if !ok {
		return RoomView{}, false
	}
	return room.view(), true
}

// RoomOf reports which room conn is in.
func (e *Engine) RoomOf(conn ConnID) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	code, ok := e.conns[conn]
	return code, ok
}

// reapIdle ends and removes rooms untouched since cutoff.
func (e *Engine) reapIdle(cutoff time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	codes := e.rooms.Idle(cutoff)
	for _, code := range codes {
		room, _ := e.rooms.Get(code)
		e.notify.Broadcast(code, EventGameEnded, PlayersUpdate{Players: room.Players()})
		e.deleteRoomLocked(room)
	}
	if len(codes) > 0 {
		log.Info().Str("module", "games.charades").Int("rooms", len(codes)).Msg("reaped idle games")
	}

	return len(codes)
}

// ReapIdle removes rooms idle for longer than timeout, checking every
// timeout/2, until ctx is done.
func (e *Engine) ReapIdle(ctx context.Context, timeout time.Duration) {
	if timeout <= 0 {
		return
	}

	ticker := time.NewTicker(timeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.reapIdle(e.now().Add(-timeout))
		}
	}
}

// Close cancels every pending round start.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.rooms.List() {
		if room, ok := e.rooms.Get(s.Code); ok {
			e.cancelPendingLocked(room)
		}
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
