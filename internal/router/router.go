package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/pms-lambda/internal/auth"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/goal"
	"github.com/saulo-duarte/pms-lambda/internal/middlewares"
	"github.com/saulo-duarte/pms-lambda/internal/report"
	"github.com/saulo-duarte/pms-lambda/internal/review"
	"github.com/saulo-duarte/pms-lambda/internal/selfassessment"
)

type RouterConfig struct {
	GoalHandler    *goal.Handler
	ReviewHandler  *review.Handler
	ReportHandler  *report.Handler
	SelfHandler    *selfassessment.Handler
	AllowedOrigins []string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/reviews", review.Routes(cfg.ReviewHandler))
		r.Mount("/reports", report.Routes(cfg.ReportHandler))
		r.Mount("/self-assessments", selfassessment.Routes(cfg.SelfHandler))
	})
	return r
}
