package pkg

import (
	"github.com/google/uuid"

	"github.com/rocketscienceinc/slide-backend/internal/dependencies/random"
)

const (
	gameIDLength = 8
	// no 0/O or 1/I, ids get read out loud
	gameIDAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// GenerateGameID - short, url friendly game identifier.
func GenerateGameID(rnd random.Random) string {
	return rnd.String(gameIDLength, gameIDAlphabet)
}

// GenerateNewSessionID - identifier for a new player session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
