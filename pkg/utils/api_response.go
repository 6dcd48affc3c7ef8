package utils

import "time"

// Every game-service endpoint answers with the same envelope: a success flag,
// the payload, and optional metadata. Error codes are stable strings the
// front end switches on (ALREADY_PLAYED, ALLOCATION_EXISTS, ...).

type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Meta    *Meta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries the response timestamp, plus the page window on paged lists.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	Page      *int      `json:"page,omitempty"`
	PerPage   *int      `json:"per_page,omitempty"`
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
		},
	}
}

// CreatePagedResponse is CreateSuccessResponse for the admin list endpoints,
// echoing the page window back to the caller.
func CreatePagedResponse(data any, page, perPage int) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
			Page:      &page,
			PerPage:   &perPage,
		},
	}
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    code,
			Message: message,
		},
	}
}
