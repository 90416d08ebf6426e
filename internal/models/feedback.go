package models

// ContactRequest is the request body for POST /api/contact
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// FeedbackRequest is the request body for POST /api/feedback.
// Website is a honeypot: humans never fill it.
type FeedbackRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email" binding:"omitempty,email"`
	Reason        string `json:"reason"`
	Message       string `json:"message"`
	Status        string `json:"status"`
	RelatedCampID string `json:"relatedCampId"`
	Website       string `json:"website"`
}
