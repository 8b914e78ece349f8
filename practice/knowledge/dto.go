package knowledge

// IngestRequest adds one document to the knowledge base.
type IngestRequest struct {
	Title string   `json:"title"`
	Role  string   `json:"role"`
	Text  string   `json:"text"`
	Tags  []string `json:"tags,omitempty"`
}

// IngestResponse confirms a stored document.
type IngestResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"document_id"`
}

// SearchRequest queries the knowledge base.
type SearchRequest struct {
	Query    string `json:"query"`
	TopK     int    `json:"top_k"`
	RoleHint string `json:"role_hint,omitempty"`
}

// Normalize clamps top_k to the original service's bounds.
func (r SearchRequest) Normalize() SearchRequest {
	if r.TopK < 1 {
		r.TopK = 3
	}
	if r.TopK > 20 {
		r.TopK = 20
	}
	return r
}

// SearchResult is one scored document in a search response.
type SearchResult struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Role       string   `json:"role"`
	Text       string   `json:"text"`
	Tags       []string `json:"tags,omitempty"`
	Similarity float64  `json:"similarity"`
}

// SearchResponse is the search response body.
type SearchResponse struct {
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}
