package widget

import (
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
)

// Mode selects the Capture screen shown in the iframe.
type Mode string

const (
	ModeSignin   Mode = "signin"
	ModeRegister Mode = "register"
)

// DefaultMountPath is where the handler package mounts its routes.
const DefaultMountPath = "/janrain"

// Config describes the host application to Janrain widgets.
type Config struct {
	AppID     string `env:"JANRAIN_APP_ID"`
	ClientID  string `env:"JANRAIN_CLIENT_ID"`
	EngageApp string `env:"JANRAIN_ENGAGE_APP"`
	// Domain is the public host[:port] of this application.
	Domain    string `env:"JANRAIN_DOMAIN"`
	Secure    bool   `env:"JANRAIN_SECURE" envDefault:"true"`
	MountPath string `env:"JANRAIN_MOUNT_PATH" envDefault:"/janrain"`
	Width     int    `env:"JANRAIN_WIDGET_WIDTH" envDefault:"500"`
	Height    int    `env:"JANRAIN_WIDGET_HEIGHT" envDefault:"500"`
}

func (c Config) validate() error {
	if c.AppID == "" || c.ClientID == "" || c.Domain == "" {
		return ErrMissingWidgetConfig
	}
	return nil
}

// LocalURL returns the absolute URL of path under the mount path.
func (c Config) LocalURL(path string) string {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	mount := c.MountPath
	if mount == "" {
		mount = DefaultMountPath
	}
	return (&url.URL{Scheme: scheme, Host: c.Domain, Path: mount + "/" + path}).String()
}

// RedirectURI is the Capture OAuth redirect target.
func (c Config) RedirectURI() string { return c.LocalURL("oauth_redirect") }

// XDReceiverURL is the cross-domain receiver page.
func (c Config) XDReceiverURL() string { return c.LocalURL("xdcomm.html") }

// OAuth2 returns the authorization-code config for mode.
func (c Config) OAuth2(mode Mode) (*oauth2.Config, error) {
	if mode != ModeSignin && mode != ModeRegister {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:    c.ClientID,
		RedirectURL: c.RedirectURI(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   fmt.Sprintf("https://%s.janraincapture.com/oauth/%s", c.AppID, mode),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, nil
}

// CaptureURL returns the iframe source for the Capture signin or register screen.
func CaptureURL(cfg Config, mode Mode) (string, error) {
	oc, err := cfg.OAuth2(mode)
	if err != nil {
		return "", err
	}
	return oc.AuthCodeURL("", oauth2.SetAuthURLParam("xd_receiver", cfg.XDReceiverURL())), nil
}

// EngageURL returns the Engage embedded sign-in URL posting its token back
// to the login route, which then redirects to next.
func EngageURL(cfg Config, next string) (string, error) {
	if cfg.EngageApp == "" || cfg.Domain == "" {
		return "", ErrMissingWidgetConfig
	}
	token := cfg.LocalURL("login")
	if next != "" {
		token += "?" + url.Values{"redirect_to": {next}}.Encode()
	}
	u := url.URL{
		Scheme:   "https",
		Host:     cfg.EngageApp + ".rpxnow.com",
		Path:     "/openid/embed",
		RawQuery: url.Values{"token_url": {token}}.Encode(),
	}
	return u.String(), nil
}
