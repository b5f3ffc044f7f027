/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

// Dispatch decodes one inbound event and routes it to the matching operation.
// Any rejection is reported back to conn as an "error" event and returned.
func (e *Engine) Dispatch(conn ConnID, event string, data json.RawMessage) error {
	err := e.dispatch(conn, event, data)
	if err != nil {
		e.reject(conn, event, err)
	}
	return err
}

func (e *Engine) dispatch(conn ConnID, event string, data json.RawMessage) error {
	switch event {
	case EventCreateGame:
		var req createGameRequest
		if err := decode(data, &req); err != nil {
			return err
		}
		return e.CreateGame(conn, req.GameCode, req.PlayerName)

	case EventJoinGame:
		var req joinGameRequest
		if err := decode(data, &req); err != nil {
			return err
		}
		return e.JoinGame(conn, req.GameCode, req.PlayerName)

	case EventReadyUp:
		var req readyUpRequest
		if err := decode(data, &req); err != nil {
			return err
		}
		if req.IsReady == nil {
			return ErrValidation
		}
		return e.ReadyUp(conn, req.GameCode, *req.IsReady)

	case EventStartGame:
		var req gameCodeRequest
		if err := decode(data, &req); err != nil {
			return err
		}
		return e.StartGame(conn, req.GameCode)

	case EventSubmitGuess:
		var req submitGuessRequest
		if err := decode(data, &req); err != nil {
			return err
		}
		return e.SubmitGuess(conn, req.GameCode, req.Guess)

	case EventSkipRound:
		var req gameCodeRequest
		if err := decode(data, &req); err != nil {
			return err
		}
		return e.SkipRound(conn, req.GameCode)

	case EventChatMessage:
		var req chatMessageRequest
		if err := decode(data, &req); err != nil {
			return err
		}
		return e.Chat(conn, req.GameCode, req.SenderName, req.Message)

	case EventDisconnect:
		e.Disconnect(conn)
		return nil

	default:
		return newError(CodeValidation, "Unknown event.")
	}
}

// decode treats a missing payload as empty so field validation reports it.
func decode(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errBadPayload
	}
	return nil
}

func (e *Engine) reject(conn ConnID, event string, err error) {
	var gerr *Error
	if !errors.As(err, &gerr) {
		gerr = newError(CodeValidation, err.Error())
	}

	log.Debug().Str("module", "games.charades").Str("conn", string(conn)).Str("event", event).Str("reason", string(gerr.Code)).Msg(gerr.Message)

	e.notify.SendTo(conn, EventError, ErrorMessage{
		Code:    gerr.Code,
		Message: gerr.Message,
	})
}
