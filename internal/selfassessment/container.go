package selfassessment

import (
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/cycle"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(repo Repository, directory actor.Directory, cycles cycle.Checker) *Container {
	service := NewService(repo, directory, cycles)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
