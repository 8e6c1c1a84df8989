package electionservice

import (
	"log/slog"

	httpadapter "elect/contexts/governance/election-service/adapters/http"
	"elect/contexts/governance/election-service/adapters/memory"
	"elect/contexts/governance/election-service/application/commands"
	"elect/contexts/governance/election-service/application/queries"
	"elect/contexts/governance/election-service/domain/entities"
	"elect/contexts/governance/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionRepository
	Votes     ports.VoteRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	votes := commands.VoteUseCase{
		Elections: deps.Elections,
		Votes:     deps.Votes,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	admin := commands.AdminUseCase{
		Elections: deps.Elections,
		Votes:     deps.Votes,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	elections := queries.ElectionQueryUseCase{
		Elections: deps.Elections,
		Votes:     deps.Votes,
		Clock:     deps.Clock,
	}
	tallies := queries.TallyUseCase{
		Elections: deps.Elections,
		Votes:     deps.Votes,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:     votes,
			Admin:     admin,
			Elections: elections,
			Tallies:   tallies,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Election, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Elections: store,
		Votes:     store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
