package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/youhong316/harbor/server/fixtureserver"
)

func main() {
	if err := fixtureserver.Run(fixtureserver.Overrides{}); err != nil {
		log.Error().Err(err).Msg("harbor-fixture exited with error")
		os.Exit(1)
	}
}
