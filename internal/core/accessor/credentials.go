package accessor

import "net/http"

const (
	HeaderRegion       = "X-Cloud-Region"
	HeaderAccessKey    = "X-Cloud-Access-Key"
	HeaderSecretKey    = "X-Cloud-Secret-Key"
	HeaderSessionToken = "X-Cloud-Session-Token"
)

// Credentials identify a provider session. The struct is comparable and is
// used directly as the memoization key.
type Credentials struct {
	Provider        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Static reports whether explicit keys were supplied rather than relying on
// the provider's default credential chain.
func (c Credentials) Static() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// CredentialsFromRequest overlays the credential headers of r on defaults.
// Keys are taken as a pair; a lone access key or secret is ignored.
func CredentialsFromRequest(r *http.Request, defaults Credentials) Credentials {
	creds := defaults
	if region := r.Header.Get(HeaderRegion); region != "" {
		creds.Region = region
	}
	accessKey := r.Header.Get(HeaderAccessKey)
	secretKey := r.Header.Get(HeaderSecretKey)
	if accessKey != "" && secretKey != "" {
		creds.AccessKeyID = accessKey
		creds.SecretAccessKey = secretKey
		creds.SessionToken = r.Header.Get(HeaderSessionToken)
	}
	return creds
}
