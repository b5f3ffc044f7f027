/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"

	"github.com/Seednode/charades/games/charades"
	"github.com/julienschmidt/httprouter"
)

type gameList struct {
	Games []charades.Summary `json:"games"`
}

// serveGames lists live rooms for lobby browsers.
func serveGames(cfg *Config, engine *charades.Engine, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if err := json.NewEncoder(w).Encode(gameList{Games: engine.Rooms()}); err != nil {
			errs <- err
		}
	}
}
