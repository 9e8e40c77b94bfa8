package janrain

// DefaultEndpoint is the base URL of the Janrain REST API.
const DefaultEndpoint = "https://rpxnow.com/api/v2/"

// Config holds Janrain API credentials.
// ClientID and ClientSecret are only required for Capture calls.
type Config struct {
	APIKey       string `env:"JANRAIN_API_KEY,required"`
	ClientID     string `env:"JANRAIN_CLIENT_ID"`
	ClientSecret string `env:"JANRAIN_CLIENT_SECRET"`
	Endpoint     string `env:"JANRAIN_API_URL" envDefault:"https://rpxnow.com/api/v2/"`
}
