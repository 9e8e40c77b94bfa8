// Package accounts maps Janrain identities onto local user accounts.
//
// A [Backend] is what an authentication view calls once the provider has
// vouched for a user. It normalizes the payload with package profile, looks the
// account up by [profile.LocalKey] and, on a miss, creates one with an unusable
// password:
//
//	backend := accounts.NewBackend(pgstore.New(pool), accounts.WithLogger(log))
//
//	user, err := backend.Authenticate(ctx, authInfo)
//	if errors.Is(err, profile.ErrUnidentifiableUser) {
//		// reject the sign-in
//	}
//
// Uniqueness of the account key is the [Store]'s job; two concurrent first
// sign-ins for the same identifier make one of them fail with [ErrDuplicateUser].
// Returning users are not updated from the provider payload.
package accounts
