package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/user-form/app"
	"github.com/mbolis/user-form/log"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Logger, NoColor: true}),
		middleware.Recoverer,
	)

	root.Get("/", FormPage())
	root.Post("/submit", SubmitUser(app))
	root.Get("/healthz", Health(app))

	return root
}
