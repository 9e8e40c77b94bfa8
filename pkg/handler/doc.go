// Package handler mounts the Janrain sign-in views on a chi router.
//
//	POST /login           Engage token callback
//	GET  /oauth_redirect  Capture authorization-code callback
//	GET  /logout
//	GET  /loginpage       Engage sign-in page
//	GET  /xdcomm.html     Capture cross-domain receiver
//	GET  /return.html     Capture popup return page
//
// A rejected sign-in (provider error, missing token or code, payload
// without an identifier) redirects to "/". Redirect targets taken from the
// request are limited to local paths.
package handler
