package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const baseTemplate = "templates/base.html"

// Page names, one file per page under templates/.
const (
	pageHome           = "home"
	pageRegister       = "register"
	pageLogin          = "login"
	pageForgotPassword = "forgot_password"
	pageResetPassword  = "reset_password"
	pageDashboard      = "dashboard"
	pageQuery          = "query"
	pageExercises      = "exercises"
)

var templateFuncs = template.FuncMap{
	"cell": formatCell,
}

var pages = mustParsePages(
	pageHome, pageRegister, pageLogin, pageForgotPassword,
	pageResetPassword, pageDashboard, pageQuery, pageExercises,
)

func mustParsePages(names ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(names))
	for _, name := range names {
		parsed[name] = template.Must(
			template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS, baseTemplate, "templates/"+name+".html"),
		)
	}
	return parsed
}

// pageData is the data passed to every page template.
type pageData struct {
	Title   string
	User    *models.User
	Flashes []flash

	Exercises []models.Exercise

	ExerciseID int64
	Question   string
	Query      string
	Result     *models.QueryResult
	Error      string

	Token string
}

// render executes page into a buffer and writes it with status. Pending
// flash messages and the signed-in user are added to data.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	log := logger.FromRequest(r)

	tmpl, ok := pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if user, ok := currentUser(r); ok {
		data.User = &user
	}
	data.Flashes = h.popFlashes(w, r)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Err(err).Str("page", page).Msg("error rendering template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Err(err).Str("page", page).Msg("error writing page")
	}
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
