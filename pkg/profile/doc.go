// Package profile normalizes Janrain user payloads into a single identity.
//
// Engage auth_info payloads nest the user under "profile":
//
//	{"profile": {"identifier": "...", "name": {"givenName": "...", "familyName": "..."},
//	             "displayName": "...", "verifiedEmail": "...", "email": "..."}}
//
// Capture entities are flat:
//
//	{"uuid": "...", "givenName": "...", "familyName": "...", "displayName": "...", "email": "..."}
//
// [Parse] decides which of the two shapes a payload has and returns an
// [EngageProfile] or a [CaptureProfile]; both implement [Profile]. Callers
// that only need the result use [Normalize]:
//
//	id, err := profile.Normalize(raw)
//	if errors.Is(err, profile.ErrUnidentifiableUser) {
//		// reject the sign-in
//	}
//	given, family := id.Names()
//	key := profile.LocalKey(id.Identifier)
//
// # Names
//
// A structured name is used only when both parts are present. Otherwise the
// display name is split on its first space ("nathaniel k smith" becomes
// "nathaniel" and "k smith"); a display name without a space becomes the
// given name alone.
package profile
