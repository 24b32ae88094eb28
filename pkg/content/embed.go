package content

// EmbedContentRequest is the body of an embedContent call.
type EmbedContentRequest struct {
	Model    string  `json:"model,omitempty"`
	Content  Content `json:"content"`
	TaskType string  `json:"taskType,omitempty"`
	Title    string  `json:"title,omitempty"`
}

// EmbedInput is accepted by EmbedContent: a Prompt, Parts, or a full
// EmbedContentRequest.
type EmbedInput interface {
	EmbedRequest() EmbedContentRequest
}

// EmbedRequest wraps the prompt as the content to embed.
func (p Prompt) EmbedRequest() EmbedContentRequest {
	return EmbedContentRequest{Content: Content{Parts: []Part{Text(string(p))}}}
}

// EmbedRequest wraps the parts as the content to embed.
func (p Parts) EmbedRequest() EmbedContentRequest {
	return EmbedContentRequest{Content: Content{Parts: p}}
}

// EmbedRequest returns r unchanged.
func (r EmbedContentRequest) EmbedRequest() EmbedContentRequest { return r }

// ContentEmbedding is a vector for one input.
type ContentEmbedding struct {
	Values []float64 `json:"values"`
}

// EmbedContentResponse is the result of an embedContent call.
type EmbedContentResponse struct {
	Embedding ContentEmbedding `json:"embedding"`
}

// BatchEmbedContentsRequest is the body of a batchEmbedContents call.
type BatchEmbedContentsRequest struct {
	Requests []EmbedContentRequest `json:"requests"`
}

// BatchEmbedContentsResponse holds one embedding per request, in order.
type BatchEmbedContentsResponse struct {
	Embeddings []ContentEmbedding `json:"embeddings"`
}
