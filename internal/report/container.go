package report

import (
	"github.com/saulo-duarte/pms-lambda/internal/goal"
	"github.com/saulo-duarte/pms-lambda/internal/review"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(goals goal.Repository, reviews review.Repository) *Container {
	service := NewService(goals, reviews)
	return &Container{
		Handler: NewHandler(service),
		Service: service,
	}
}
