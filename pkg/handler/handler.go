package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/janrain/pkg/accounts"
	"github.com/dmitrymomot/janrain/pkg/janrain"
	"github.com/dmitrymomot/janrain/pkg/logger"
	"github.com/dmitrymomot/janrain/pkg/profile"
	"github.com/dmitrymomot/janrain/pkg/widget"
)

// Provider is the subset of *janrain.Client the sign-in views call.
type Provider interface {
	AuthInfo(ctx context.Context, token string) (janrain.Response, error)
	OAuthToken(ctx context.Context, code, redirectURI string, opts ...janrain.TokenOption) (*oauth2.Token, error)
	Entity(ctx context.Context, accessToken string) (*janrain.EntityResult, error)
}

// Authenticator resolves a provider payload to a local user.
type Authenticator interface {
	Authenticate(ctx context.Context, raw map[string]any) (*accounts.User, error)
}

var (
	_ Provider      = (*janrain.Client)(nil)
	_ Authenticator = (*accounts.Backend)(nil)
)

// Handler serves the Janrain sign-in views.
type Handler struct {
	provider Provider
	auth     Authenticator
	sessions Sessions
	widgets  widget.Config
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMetrics enables sign-in counters.
func WithMetrics(m *Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithWidgets sets the widget configuration used for the Capture redirect
// URI and the rendered pages.
func WithWidgets(cfg widget.Config) Option {
	return func(h *Handler) { h.widgets = cfg }
}

// New creates a Handler.
func New(provider Provider, auth Authenticator, sessions Sessions, opts ...Option) *Handler {
	h := &Handler{
		provider: provider,
		auth:     auth,
		sessions: sessions,
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the views, to be mounted under widget.Config.MountPath.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Get("/oauth_redirect", h.OAuthRedirect)
	r.Get("/loginpage", h.LoginPage)
	r.Get("/xdcomm.html", h.render(func(*http.Request) templ.Component { return widget.XDComm() }))
	r.Get("/return.html", h.render(func(*http.Request) templ.Component { return widget.Return() }))
	return r
}

// Login completes an Engage sign-in from the token posted by the widget.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := r.PostFormValue("token")
	if token == "" {
		h.metrics.login(flowEngage, outcomeMissingToken)
		http.Redirect(w, r, defaultRedirect, http.StatusFound)
		return
	}

	info, err := h.provider.AuthInfo(ctx, token)
	if err != nil {
		h.fail(w, r, flowEngage, err)
		return
	}

	h.signIn(w, r, flowEngage, info)
}

// OAuthRedirect completes a Capture sign-in from the authorization code.
func (h *Handler) OAuthRedirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.URL.Query().Get("code")
	if code == "" {
		h.metrics.login(flowCapture, outcomeMissingToken)
		http.Redirect(w, r, defaultRedirect, http.StatusFound)
		return
	}

	tok, err := h.provider.OAuthToken(ctx, code, h.widgets.RedirectURI())
	if err != nil {
		h.fail(w, r, flowCapture, err)
		return
	}

	entity, err := h.provider.Entity(ctx, tok.AccessToken)
	if err != nil {
		h.fail(w, r, flowCapture, err)
		return
	}

	h.signIn(w, r, flowCapture, entity.Result)
}

// Logout ends the session and redirects to redirect_to.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	http.Redirect(w, r, safeRedirect(r.URL.Query().Get("redirect_to")), http.StatusFound)
}

// LoginPage renders the Engage sign-in page returning to next.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(func(r *http.Request) templ.Component {
		return widget.LoginPage(h.widgets, safeRedirect(r.URL.Query().Get("next")))
	})(w, r)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, flow string, raw map[string]any) {
	ctx := r.Context()

	u, err := h.auth.Authenticate(ctx, raw)
	if err == nil && u == nil {
		err = ErrMissingUser
	}
	if err != nil {
		h.fail(w, r, flow, err)
		return
	}

	if err := h.sessions.Login(w, r, u); err != nil {
		h.fail(w, r, flow, err)
		return
	}

	h.metrics.login(flow, outcomeSuccess)
	h.logger.InfoContext(ctx, "janrain sign-in",
		slog.String("flow", flow),
		slog.String("user_id", u.ID),
	)
	http.Redirect(w, r, safeRedirect(r.URL.Query().Get("redirect_to")), http.StatusFound)
}

// fail redirects home on provider and identity errors and answers 500 otherwise.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, flow string, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, janrain.ErrProvider):
		h.metrics.login(flow, outcomeProviderError)
	case errors.Is(err, profile.ErrUnidentifiableUser):
		h.metrics.login(flow, outcomeUnidentifiable)
	default:
		h.metrics.login(flow, outcomeError)
		h.logger.ErrorContext(ctx, "janrain sign-in failed", slog.String("flow", flow), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.logger.WarnContext(ctx, "janrain sign-in rejected", slog.String("flow", flow), logger.Error(err))
	http.Redirect(w, r, defaultRedirect, http.StatusFound)
}

func (h *Handler) render(component func(*http.Request) templ.Component) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := component(r).Render(r.Context(), w); err != nil {
			h.logger.ErrorContext(r.Context(), "render failed", slog.String("path", r.URL.Path), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
