package httpresp

const (
	ErrUnauthorized     = "unauthorized"
	ErrMissingToken     = "bearer token is required"
	ErrMalformedToken   = "token must be of form 'Bearer <jwt>'"
	ErrInvalidToken     = "invalid token"
	ErrForbidden        = "forbidden"
	ErrInsufficientRole = "insufficient permissions"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

func NewOKResponse() OKResponse {
	return OKResponse{OK: true}
}
