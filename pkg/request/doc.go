// Package request implements the shared HTTP request helper used by every
// model wrapper.
//
// It contains:
//   - [Task] discriminators naming the remote model capability
//   - [RequestOptions] and the shallow [Merge] of per-call overrides over instance defaults
//   - [Client], the default [Requester], which builds the task URL, applies the API key and
//     client headers, enforces timeouts, optionally retries 429/5xx responses, and reports
//     failures as [Error], [FetchError], [AbortError] or [RequestInputError]
//   - [DecodeJSON] for turning a successful response into a typed value
//
// This package contains no modality-specific code. Model wrappers live in
// github.com/germanamz/genai/pkg/models.
package request
