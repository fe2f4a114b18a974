package dto

// CompanionRequest is the chat endpoint body.
type CompanionRequest struct {
	Message string `json:"message"`
}

// CompanionResponse carries the completion text back to the caller.
type CompanionResponse struct {
	Response string `json:"response"`
}
