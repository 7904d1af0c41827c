package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/recipe-box/auth"
	"github.com/jrsteele09/recipe-box/backend"
	"github.com/jrsteele09/recipe-box/users"
)

const defaultRecipeID = "weekly-special"

// PageData is what every page template renders from.
type PageData struct {
	AppName     string
	Title       string
	User        *users.SessionUser
	Error       string
	Message     string
	CallbackURL string
	Token       string
	RecipeID    string
	// Draft is the signed-in user's unsaved review of RecipeID
	Draft     *backend.Review
	Providers []string
}

// PageHandler renders the named page for the user the guard let through, if any.
func (s *Server) PageHandler(name, title string) http.HandlerFunc {
	tmpl, ok := s.pages[name]
	if !ok {
		panic("unknown page template: " + name)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		data := PageData{
			AppName:     s.config.GetAppName(),
			Title:       title,
			User:        currentUser(r),
			Error:       query.Get(QueryError),
			CallbackURL: localPath(query.Get(QueryCallbackURL), RouteDashboard),
			Token:       query.Get("token"),
			RecipeID:    query.Get("recipe"),
			Providers:   auth.SupportedProviders,
		}
		if data.RecipeID == "" {
			data.RecipeID = defaultRecipeID
		}
		if data.User != nil {
			if draft, ok := s.reviews.Draft(data.User.ID, data.RecipeID); ok {
				data.Draft = &draft
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.ExecuteTemplate(w, layoutName, data); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("Failed to render page")
		}
	}
}
