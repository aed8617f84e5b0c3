package response

import (
	apperrors "creator-station/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response is the standard API envelope.
type Response struct {
	Error  int32  `json:"error"`            // error code (0 = success)
	Msg    string `json:"msg"`              // human-readable message
	Detail string `json:"detail,omitempty"` // additional error details
	Data   any    `json:"data"`             // response payload
}

// R sends a raw JSON response
func R(c *gin.Context, data any) {
	c.JSON(200, data)
}

// Success returns a success response with data
func Success(c *gin.Context, data any) {
	c.JSON(200, Response{
		Error: 0,
		Msg:   "success",
		Data:  data,
	})
}

// Error returns an error response with code and message
func Error(c *gin.Context, code int, msg string) {
	c.JSON(200, Response{
		Error: int32(code),
		Msg:   msg,
	})
}

// FromError converts an error to a Response, extracting the AppError code
// and detail when present.
func FromError(err error) Response {
	if err == nil {
		return Response{Error: 0, Msg: "success"}
	}

	var detail string
	if appErr, ok := err.(*apperrors.AppError); ok {
		detail = appErr.Detail
	}

	return Response{
		Error:  int32(apperrors.GetCode(err)),
		Msg:    apperrors.GetMessage(err),
		Detail: detail,
	}
}

// ErrorResponse sends an error response from an error
func ErrorResponse(c *gin.Context, err error) {
	c.JSON(200, FromError(err))
}
