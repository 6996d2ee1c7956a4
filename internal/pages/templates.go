package pages

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"complaint-desk/internal/dto/response"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var assets embed.FS

type Templates struct {
	landing       *template.Template
	authSelection *template.Template
	login         *template.Template
	signup        *template.Template
	verify        *template.Template
	dashboard     *template.Template

	log *zap.Logger
}

type ViewData struct {
	Title  string
	Error  string
	Notice string
}

type LoginViewData struct {
	Title  string
	Email  string
	Error  string
	Notice string
}

type SignupViewData struct {
	Title    string
	Username string
	Email    string
	Role     string
	Errors   map[string]string
	Error    string
}

type VerifyViewData struct {
	Title  string
	Email  string
	Error  string
	Notice string
}

type DashboardViewData struct {
	Title      string
	Role       string
	Complaints []*response.ComplaintResponse
	Error      string
}

func ParseTemplates(log *zap.Logger) (*Templates, error) {
	parse := func(files ...string) (*template.Template, error) {
		return template.New("base").ParseFS(assets, files...)
	}

	landing, err := parse("templates/layout.html", "templates/landing.html")
	if err != nil {
		return nil, fmt.Errorf("parse landing: %w", err)
	}
	authSelection, err := parse("templates/layout.html", "templates/auth_selection.html")
	if err != nil {
		return nil, fmt.Errorf("parse auth selection: %w", err)
	}
	login, err := parse("templates/layout.html", "templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("parse login: %w", err)
	}
	signup, err := parse("templates/layout.html", "templates/signup.html")
	if err != nil {
		return nil, fmt.Errorf("parse signup: %w", err)
	}
	verify, err := parse("templates/layout.html", "templates/verify.html")
	if err != nil {
		return nil, fmt.Errorf("parse verify: %w", err)
	}
	dashboard, err := parse("templates/layout.html", "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard: %w", err)
	}

	return &Templates{
		landing:       landing,
		authSelection: authSelection,
		login:         login,
		signup:        signup,
		verify:        verify,
		dashboard:     dashboard,
		log:           log,
	}, nil
}

func (t *Templates) render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		t.log.Error("Failed to render template", zap.Error(err))
	}
}

func (t *Templates) RenderLanding(w http.ResponseWriter, status int, data ViewData) {
	t.render(w, t.landing, status, data)
}

func (t *Templates) RenderAuthSelection(w http.ResponseWriter, status int, data ViewData) {
	t.render(w, t.authSelection, status, data)
}

func (t *Templates) RenderLogin(w http.ResponseWriter, status int, data LoginViewData) {
	t.render(w, t.login, status, data)
}

func (t *Templates) RenderSignup(w http.ResponseWriter, status int, data SignupViewData) {
	t.render(w, t.signup, status, data)
}

func (t *Templates) RenderVerify(w http.ResponseWriter, status int, data VerifyViewData) {
	t.render(w, t.verify, status, data)
}

func (t *Templates) RenderDashboard(w http.ResponseWriter, status int, data DashboardViewData) {
	t.render(w, t.dashboard, status, data)
}
