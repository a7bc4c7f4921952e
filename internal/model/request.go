package model

// InputType classifies what kind of content a request refers to
type InputType string

const (
	InputTypeText       InputType = "text"        // Free text pasted by the caller
	InputTypeURL        InputType = "url"         // A web page URL
	InputTypeSocialPost InputType = "social_post" // A social platform post URL or id
	InputTypeAuto       InputType = "auto"        // Let the pipeline detect the kind
)

// AnalysisRequest is the immutable description of one analysis run
type AnalysisRequest struct {
	RawInput     string    `json:"raw_input"`              // Text, URL, or post reference as received
	DeclaredType InputType `json:"declared_type"`          // Caller-declared kind, or "auto"
	RequesterID  string    `json:"requester_id,omitempty"` // Optional caller identity for persistence
}

// ExtractedContent is the normalized text produced once per request
type ExtractedContent struct {
	Text         string    `json:"text"`                    // Plain text to analyze
	OriginType   InputType `json:"origin_type"`             // Resolved kind (never "auto")
	SourceDomain string    `json:"source_domain,omitempty"` // Host for url/social_post inputs
}

// MinContentLength is the shortest extracted text the pipeline will analyze.
// Anything shorter aborts with a terminal failed verdict.
const MinContentLength = 10
