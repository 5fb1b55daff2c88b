package httpapi

import "jobscout-engine/internal/domain"

type catalogResponse struct {
	Titles    []string `json:"titles"`
	Locations []string `json:"locations"`
}

type messageRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Message  string `json:"message,omitempty"`
}

type messageResponse struct {
	Status   string                `json:"status"`
	Messages []domain.InboxMessage `json:"messages"`
}

type setBoardPasswordReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
