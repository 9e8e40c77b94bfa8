package widget

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// XDCommScript is the Capture cross-domain receiver library.
const XDCommScript = "https://d1lqe9temigv1p.cloudfront.net/js/lib/xdcomm.js"

// CaptureSignin renders the Capture signin iframe.
func CaptureSignin(cfg Config) templ.Component { return Capture(cfg, ModeSignin) }

// CaptureRegister renders the Capture registration iframe.
func CaptureRegister(cfg Config) templ.Component { return Capture(cfg, ModeRegister) }

// Capture renders the iframe for mode. Configuration errors surface from Render.
func Capture(cfg Config, mode Mode) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		src, err := CaptureURL(cfg, mode)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<iframe width="%d" height="%d" src="%s"></iframe>`,
			cfg.Width, cfg.Height, templ.EscapeString(src))
		return err
	})
}

// LoginPage renders a standalone page with the Engage embedded widget.
func LoginPage(cfg Config, next string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		src, err := EngageURL(cfg, next)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Sign in</title></head>
<body><iframe src="%s" scrolling="no" frameborder="no" style="width:%dpx;height:%dpx"></iframe></body></html>
`, templ.EscapeString(src), cfg.Width, cfg.Height)
		return err
	})
}

// XDComm renders the cross-domain receiver page Capture talks to.
func XDComm() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Cross-Domain Receiver Page</title></head>
<body><script type="text/javascript" src="`+XDCommScript+`"></script></body></html>
`)
		return err
	})
}

// Return renders the page loaded in the Capture popup after a flow ends.
// It reloads the opener, or this window when there is none.
func Return() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body><script type="text/javascript">
if (window.opener) { window.opener.location.reload(); window.close(); } else { window.location.href = "/"; }
</script></body></html>
`)
		return err
	})
}
