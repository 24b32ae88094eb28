package request

import (
	"maps"
	"time"
)

const (
	// DefaultBaseURL is the service root used when no BaseURL is configured.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultAPIVersion is the API version used when none is configured.
	DefaultAPIVersion = "v1beta"
)

// Task identifies which remote capability a call targets. Its value is the
// method suffix of the endpoint URL.
type Task string

const (
	TaskGenerateContent       Task = "generateContent"
	TaskStreamGenerateContent Task = "streamGenerateContent"
	TaskCountTokens           Task = "countTokens"
	TaskEmbedContent          Task = "embedContent"
	TaskBatchEmbedContents    Task = "batchEmbedContents"
	TaskGenerateImages        Task = "generateImages"
	TaskGenerateSpeech        Task = "generateSpeech"
)

func (t Task) String() string { return string(t) }

// RequestOptions configure how a call is transported. A zero field means
// "not set"; defaults are applied by the request helper at call time.
type RequestOptions struct {
	APIVersion    string            // API version path segment (default "v1beta").
	BaseURL       string            // Service root without trailing slash.
	Timeout       time.Duration     // Deadline for a single HTTP attempt; zero means none.
	APIClient     string            // Appended to the x-goog-api-client header.
	CustomHeaders map[string]string // Extra headers sent with the request.
	MaxRetries    int               // Retries on 429 and 5xx responses; zero disables retrying.
}

// SingleRequestOptions are per-call overrides. Cancellation of a single call
// is expressed through the context passed to the call.
type SingleRequestOptions = RequestOptions

// Merge returns defaults with every set field of each override applied in
// order. The merge is shallow: a non-nil CustomHeaders map replaces the
// default map wholesale.
func Merge(defaults RequestOptions, overrides ...SingleRequestOptions) RequestOptions {
	merged := defaults

	for _, o := range overrides {
		if o.APIVersion != "" {
			merged.APIVersion = o.APIVersion
		}
		if o.BaseURL != "" {
			merged.BaseURL = o.BaseURL
		}
		if o.Timeout != 0 {
			merged.Timeout = o.Timeout
		}
		if o.APIClient != "" {
			merged.APIClient = o.APIClient
		}
		if o.CustomHeaders != nil {
			merged.CustomHeaders = o.CustomHeaders
		}
		if o.MaxRetries != 0 {
			merged.MaxRetries = o.MaxRetries
		}
	}

	return merged
}

// Clone returns a copy of o that shares no mutable state with it.
func (o RequestOptions) Clone() RequestOptions {
	o.CustomHeaders = maps.Clone(o.CustomHeaders)
	return o
}

// withDefaults fills the URL-related fields that are still unset.
func (o RequestOptions) withDefaults() RequestOptions {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.APIVersion == "" {
		o.APIVersion = DefaultAPIVersion
	}

	return o
}
