package auth

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// ContactFiller receives the identity of a signed-in user.
type ContactFiller interface {
	PrefillContact(ctx context.Context, sessionID, firstName, lastName, email string) (resume.Resume, error)
}

// Service runs the sign-in stub: OAuth round trips that only pre-fill the resume contact block.
// No tokens are issued and no route requires a sign-in.
type Service struct {
	Contacts   ContactFiller
	UIRedirect string

	providers []*Provider
	states    *stateStore
	stateTTL  time.Duration
	now       func() time.Time
}

// NewService constructs a Service offering providers in the given order.
func NewService(contacts ContactFiller, uiRedirect string, providers ...*Provider) *Service {
	return &Service{
		Contacts:   contacts,
		UIRedirect: uiRedirect,
		providers:  providers,
		states:     newStateStore(time.Now),
		stateTTL:   5 * time.Minute,
		now:        time.Now,
	}
}

// RegisterPages attaches the sign-in page.
func (s *Service) RegisterPages(r gin.IRoutes) {
	r.GET("/auth/signin", s.signInPage)
}

// RegisterRoutes attaches the OAuth routes.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/:provider/start", s.start)
	rg.GET("/auth/:provider/callback", s.callback)
}

func (s *Service) provider(c *gin.Context) (*Provider, bool) {
	name := strings.ToLower(c.Param("provider"))
	for _, p := range s.providers {
		if p.Name == name {
			if !p.Configured() {
				respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "sign-in with "+p.Name+" is not configured", nil)
				return nil, false
			}
			return p, true
		}
	}
	respond.Error(c, http.StatusNotFound, "not_found", "unknown sign-in provider", nil)
	return nil, false
}

func (s *Service) start(c *gin.Context) {
	p, ok := s.provider(c)
	if !ok {
		return
	}
	state := uuid.NewString()
	s.states.put(state, pendingSignIn{
		sessionID: middleware.SessionIDFromContext(c),
		provider:  p.Name,
		expires:   s.now().Add(s.stateTTL),
	})
	c.Redirect(http.StatusFound, p.Config.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

func (s *Service) callback(c *gin.Context) {
	p, ok := s.provider(c)
	if !ok {
		return
	}
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	pending, ok := s.states.consume(state, p.Name)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}
	profile, err := p.Profile(ctx, p.Config.Client(ctx, token))
	if err != nil {
		telemetry.Warn("auth.profile_failed", map[string]any{"provider": p.Name, "error": err})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if profile.Subject == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}

	r, err := s.Contacts.PrefillContact(ctx, pending.sessionID, profile.FirstName, profile.LastName, profile.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
		return
	}
	telemetry.Info("auth.signed_in", map[string]any{"provider": p.Name, "session_id": pending.sessionID})

	if s.UIRedirect == "" {
		respond.OK(c, r)
		return
	}
	c.Redirect(http.StatusFound, s.UIRedirect)
}

type signInOption struct {
	Label   string
	Href    string
	Enabled bool
}

var signInTemplate = template.Must(template.New("signin").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sign In</title>
<style>
body{font-family:system-ui,sans-serif;background:#f9fafb;color:#111827;display:flex;justify-content:center;padding:48px 16px}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:8px;padding:32px;max-width:400px;width:100%}
h2{text-align:center;margin:0 0 8px}
p{text-align:center;color:#374151}
a.button,span.button{display:block;text-align:center;border:1px solid #d1d5db;border-radius:6px;padding:10px;margin:12px 0;color:#111827;text-decoration:none}
span.button{color:#9ca3af}
small{display:block;text-align:center;color:#6b7280}
</style>
</head>
<body>
<div class="card">
<h2>Welcome to ResumeAI</h2>
<p>Sign in to start building your perfect resume</p>
{{range .}}{{if .Enabled}}<a class="button" href="{{.Href}}">{{.Label}}</a>{{else}}<span class="button" title="Not configured">{{.Label}}</span>{{end}}
{{end}}<small>By signing in, you agree to our Terms of Service and Privacy Policy. Your data is processed locally and never shared.</small>
<p>Don't have an account? Sign in with Google or GitHub to get started.</p>
</div>
</body>
</html>
`))

func (s *Service) signInPage(c *gin.Context) {
	options := make([]signInOption, 0, len(s.providers))
	for _, p := range s.providers {
		options = append(options, signInOption{
			Label:   p.Label,
			Href:    "/api/auth/" + p.Name + "/start",
			Enabled: p.Configured(),
		})
	}
	var b strings.Builder
	if err := signInTemplate.Execute(&b, options); err != nil {
		respond.Error(c, http.StatusInternalServerError, "render_failed", err.Error(), nil)
		return
	}
	respond.HTML(c, http.StatusOK, []byte(b.String()))
}
