// Package janrain provides a client for the Janrain Engage and Capture REST APIs.
//
// Engage is the social-login product: after a user signs in through the Engage
// widget, the application receives a one-time token and exchanges it for the
// user's profile with [Client.AuthInfo]. Capture is the hosted user store: the
// sign-in iframe redirects back with an OAuth authorization code which is
// exchanged with [Client.OAuthToken] and then used to read the user's entity
// with [Client.Entity].
//
// # Usage
//
//	client, err := janrain.New(janrain.Config{
//		APIKey:       os.Getenv("JANRAIN_API_KEY"),
//		ClientID:     os.Getenv("JANRAIN_CLIENT_ID"),
//		ClientSecret: os.Getenv("JANRAIN_CLIENT_SECRET"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Engage
//	info, err := client.AuthInfo(ctx, token)
//
//	// Capture
//	tok, err := client.OAuthToken(ctx, code, redirectURI)
//	entity, err := client.Entity(ctx, tok.AccessToken)
//
// Lower-level access is available through [Client.Request], which signs the
// request with the API key and returns the decoded JSON body.
//
// # Error Handling
//
//   - ErrInvalidMethod: HTTP verb other than GET or POST, raised before any I/O
//   - ErrTransport: connection failure or non-JSON response body
//   - ErrProvider: matched by *APIError, the provider answered with stat != "ok" or an error field
//   - ErrAmbiguousInvocation: missing credentials or parameters for the requested operation
//
// None of these are retried. A provider error usually means the sign-in failed
// and the user should be sent back to a safe page:
//
//	if errors.Is(err, janrain.ErrProvider) {
//		http.Redirect(w, r, "/", http.StatusFound)
//		return
//	}
package janrain
