// Package widget renders the Janrain sign-in embeds: the Capture iframe for
// the signin and register screens, the Engage login page, and the
// cross-domain receiver and return pages Capture loads back from the host.
//
// Components implement [github.com/a-h/templ.Component]:
//
//	cfg := widget.Config{AppID: "myapp", ClientID: "abc", Domain: "www.example.com", Secure: true}
//	_ = widget.CaptureSignin(cfg).Render(ctx, w)
package widget
