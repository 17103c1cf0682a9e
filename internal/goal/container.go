package goal

import (
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/cycle"
	"github.com/saulo-duarte/pms-lambda/internal/review"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(repo Repository, reviews review.Emitter, directory actor.Directory, cycles cycle.Checker) *Container {
	service := NewService(repo, reviews, directory, cycles)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
