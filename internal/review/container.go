package review

type Container struct {
	Handler *Handler
	Service Service
	Emitter Emitter
	Repo    Repository
}

func NewContainer(repo Repository) *Container {
	service := NewService(repo)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Emitter: NewEmitter(repo),
		Repo:    repo,
	}
}
