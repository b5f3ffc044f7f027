/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

// Inbound event names.
const (
	EventCreateGame  = "create-game"
	EventJoinGame    = "join-game"
	EventReadyUp     = "ready-up"
	EventStartGame   = "start-game"
	EventSubmitGuess = "submit-guess"
	EventSkipRound   = "skip-round"
	EventChatMessage = "chat-message" // also relayed outbound
	EventDisconnect  = "disconnect"
)

// Outbound event names.
const (
	EventGameJoined      = "game-joined"
	EventPlayerJoined    = "player-joined"
	EventPlayerReady     = "player-ready"
	EventPlayerLeft      = "player-left"
	EventGameStarted     = "game-started"
	EventRoundStarted    = "round-started"
	EventEmoji           = "emoji"
	EventCorrectGuess    = "correct-guess"
	EventRoundTransition = "round-transition"
	EventGameEnded       = "game-ended"
	EventHostChanged     = "host-changed"
	EventError           = "error"
)

type createGameRequest struct {
	GameCode   string `json:"gameCode"`
	PlayerName string `json:"playerName"`
}

type joinGameRequest struct {
	GameCode   string `json:"gameCode"`
	PlayerName string `json:"playerName"`
}

type readyUpRequest struct {
	GameCode string `json:"gameCode"`
	IsReady  *bool  `json:"isReady"`
}

type gameCodeRequest struct {
	GameCode string `json:"gameCode"`
}

type submitGuessRequest struct {
	GameCode string `json:"gameCode"`
	Guess    string `json:"guess"`
}

type chatMessageRequest struct {
	GameCode   string `json:"gameCode"`
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
}

// GameJoined is sent only to the connection that created or joined a room.
type GameJoined struct {
	GameCode string   `json:"gameCode"`
	Player   Player   `json:"player"`
	GameRoom RoomView `json:"gameRoom"`
}

// PlayersUpdate carries the full roster for player-joined, player-ready,
// player-left and game-ended.
type PlayersUpdate struct {
	Players []Player `json:"players"`
}

type GameStarted struct{}

// RoundStarted announces the actor without the concept.
type RoundStarted struct {
	Round   int    `json:"round"`
	ActorID ConnID `json:"actorId"`
}

// Emoji is the round's secret, sent to the actor only.
type Emoji struct {
	Concept Concept `json:"concept"`
}

type CorrectGuess struct {
	Player  string  `json:"player"`
	Concept Concept `json:"concept"`
}

type RoundTransition struct {
	NextRound int `json:"nextRound"`
}

type HostChanged struct {
	NewHostID ConnID `json:"newHostId"`
}

type ChatMessage struct {
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
}

type ErrorMessage struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}
