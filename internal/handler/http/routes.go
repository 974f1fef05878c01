package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(5, "text/html", "application/json"))

	router.Get("/healthz", h.healthz)
	router.Get("/version", h.version)

	router.Group(func(r chi.Router) {
		r.Use(h.withSession)

		// pages without authorization
		r.Get("/", h.home)
		r.Get("/register", h.registerPage)
		r.Post("/register", h.register)
		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Get("/forgot_password", h.forgotPasswordPage)
		r.Post("/forgot_password", h.forgotPassword)
		r.Get("/reset_password/{token}", h.resetPasswordPage)
		r.Post("/reset_password/{token}", h.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Get("/logout", h.logout)
			r.Get("/dashboard", h.dashboard)
			r.Get("/query", h.queryPage)
			r.Post("/query", h.runQuery)
			r.Get("/exercises", h.exercises)
			r.Post("/submit_query/{exercise_id}", h.submitQuery)
			r.Get("/download_pdf", h.downloadPDF)
		})
	})

	return router
}
