package response

import "newspaper/internal/domain/models"

const (
	StatusOk    = "OK"
	StatusError = "Error"
)

type Response struct {
	Status   string            `json:"status"`
	Error    string            `json:"error,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Token    string            `json:"token,omitempty"`
	ID       int64             `json:"id,omitempty"`
	User     *models.User      `json:"user,omitempty"`
	Article  *models.Article   `json:"article,omitempty"`
	Articles []models.Article  `json:"articles,omitempty"`
	Comment  *models.Comment   `json:"comment,omitempty"`
}

func OK() Response {
	return Response{
		Status: StatusOk,
	}
}

func Err(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError reports per-field messages for a rejected payload.
func ValidationError(fields map[string]string) Response {
	return Response{
		Status: StatusError,
		Error:  "invalid request",
		Fields: fields,
	}
}
