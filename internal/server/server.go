package server

// Server bundles the entity-specific HTTP servers. The dataset API only has
// games and snapshots, both served by GamesServer.
type Server struct {
	GamesServer
}

func NewServer(
	gamesServer GamesServer,
) Server {
	return Server{
		GamesServer: gamesServer,
	}
}
