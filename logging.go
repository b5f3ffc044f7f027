/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logDate string = `2006-01-02T15:04:05.000-07:00`

// setupLogging points the global logger at out. Debug lines are only emitted
// with --verbose.
func setupLogging(out io.Writer, verbose bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: logDate,
	}).With().Timestamp().Logger()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
