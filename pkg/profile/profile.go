package profile

import (
	"errors"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Kind names the payload shape a profile was parsed from.
type Kind string

const (
	KindEngage  Kind = "engage"
	KindCapture Kind = "capture"
)

// Profile is a user payload from either Janrain product.
type Profile interface {
	Kind() Kind
	// Identifier is the provider's stable user identifier; never empty.
	Identifier() string
	// Names returns the given and family name; either may be empty.
	Names() (given, family string)
	// Email returns the verified email if present, else the plain email, else "".
	Email() string
}

// EngageProfile is an Engage auth_info payload.
type EngageProfile struct {
	identifier    string
	givenName     string
	familyName    string
	displayName   string
	verifiedEmail string
	email         string
	// top-level fallbacks, outside the "profile" object
	outerVerifiedEmail string
	outerEmail         string
}

func (p *EngageProfile) Kind() Kind         { return KindEngage }
func (p *EngageProfile) Identifier() string { return p.identifier }

func (p *EngageProfile) Names() (string, string) {
	return splitNames(p.givenName, p.familyName, p.displayName)
}

func (p *EngageProfile) Email() string {
	return firstNonEmpty(p.verifiedEmail, p.email, p.outerVerifiedEmail, p.outerEmail)
}

// CaptureProfile is a Capture entity.
type CaptureProfile struct {
	uuid          string
	givenName     string
	familyName    string
	displayName   string
	verifiedEmail string
	email         string
}

func (p *CaptureProfile) Kind() Kind         { return KindCapture }
func (p *CaptureProfile) Identifier() string { return p.uuid }

func (p *CaptureProfile) Names() (string, string) {
	return splitNames(p.givenName, p.familyName, p.displayName)
}

func (p *CaptureProfile) Email() string {
	return firstNonEmpty(p.verifiedEmail, p.email)
}

type engagePayload struct {
	VerifiedEmail string `mapstructure:"verifiedEmail"`
	Email         string `mapstructure:"email"`
	Profile       struct {
		Identifier    string `mapstructure:"identifier"`
		Name          any    `mapstructure:"name"`
		DisplayName   string `mapstructure:"displayName"`
		VerifiedEmail string `mapstructure:"verifiedEmail"`
		Email         string `mapstructure:"email"`
	} `mapstructure:"profile"`
}

type capturePayload struct {
	UUID          string `mapstructure:"uuid"`
	GivenName     string `mapstructure:"givenName"`
	FamilyName    string `mapstructure:"familyName"`
	DisplayName   string `mapstructure:"displayName"`
	VerifiedEmail string `mapstructure:"verifiedEmail"`
	Email         string `mapstructure:"email"`
}

type structuredName struct {
	GivenName  string `mapstructure:"givenName"`
	FamilyName string `mapstructure:"familyName"`
}

// Parse resolves raw into an EngageProfile when it carries a non-empty
// profile.identifier, otherwise into a CaptureProfile when it carries a
// non-empty uuid. Any other payload fails with ErrUnidentifiableUser.
func Parse(raw map[string]any) (Profile, error) {
	if len(raw) == 0 {
		return nil, errors.Join(ErrUnidentifiableUser, errors.New("empty payload"))
	}

	if _, ok := raw["profile"].(map[string]any); ok {
		var e engagePayload
		if err := decode(raw, &e); err != nil {
			return nil, errors.Join(ErrUnidentifiableUser, err)
		}
		if e.Profile.Identifier != "" {
			p := &EngageProfile{
				identifier:         e.Profile.Identifier,
				displayName:        e.Profile.DisplayName,
				verifiedEmail:      e.Profile.VerifiedEmail,
				email:              e.Profile.Email,
				outerVerifiedEmail: e.VerifiedEmail,
				outerEmail:         e.Email,
			}
			// "name" is only honoured when it is an object.
			if m, ok := e.Profile.Name.(map[string]any); ok {
				var n structuredName
				if err := decode(m, &n); err == nil {
					p.givenName, p.familyName = n.GivenName, n.FamilyName
				}
			}
			return p, nil
		}
	}

	var c capturePayload
	if err := decode(raw, &c); err != nil {
		return nil, errors.Join(ErrUnidentifiableUser, err)
	}
	if c.UUID == "" {
		return nil, errors.Join(ErrUnidentifiableUser, errors.New("payload has neither profile.identifier nor uuid"))
	}

	return &CaptureProfile{
		uuid:          c.UUID,
		givenName:     c.GivenName,
		familyName:    c.FamilyName,
		displayName:   c.DisplayName,
		verifiedEmail: c.VerifiedEmail,
		email:         c.Email,
	}, nil
}

// splitNames applies the name resolution order shared by both shapes.
func splitNames(given, family, display string) (string, string) {
	if given != "" && family != "" {
		return given, family
	}
	if display == "" {
		return "", ""
	}
	if len(display) > 1 {
		if first, rest, ok := strings.Cut(display, " "); ok {
			return first, rest
		}
	}
	return display, ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func decode(input, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       objectToEmptyString,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return d.Decode(input)
}

// objectToEmptyString decodes an object or array into an empty string
// instead of failing the whole payload.
func objectToEmptyString(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return "", nil
	}
	return data, nil
}
