package repository

const (
	gameKeyPrefix   = "game:"
	playerKeyPrefix = "player:"
)

func gameKey(id string) string {
	return gameKeyPrefix + id
}

func playerKey(id string) string {
	return playerKeyPrefix + id
}
