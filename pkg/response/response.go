package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/tastegraph/pkg/apperr"
	"github.com/d60-Lab/tastegraph/pkg/logger"
)

// Response 统一响应信封
type Response struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Data         any    `json:"data,omitempty"`
	ResponseCode string `json:"response_code"`
}

const (
	codeOK           = "0000"
	codeBadRequest   = "4000"
	codeUnauthorized = "4010"
	codeForbidden    = "4030"
	codeNotFound     = "4040"
	codeConflict     = "4090"
	codeTooMany      = "4290"
	codeInternal     = "5000"
)

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: "success", Data: data, ResponseCode: codeOK})
}

func SuccessWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, ResponseCode: codeOK})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Message: message, ResponseCode: codeBadRequest})
}

func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: message, ResponseCode: codeUnauthorized})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Response{Message: message, ResponseCode: codeForbidden})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{Message: message, ResponseCode: codeNotFound})
}

func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{Message: message, ResponseCode: codeConflict})
}

func TooManyRequests(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Message: message, ResponseCode: codeTooMany})
}

// InternalError 记录完整错误,对外只返回通用消息,不泄露内部细节
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{Message: "internal server error", ResponseCode: codeInternal})
}

// FromError 按业务错误分类写响应
func FromError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		BadRequest(c, apperr.MessageOf(err))
	case apperr.KindNotFound:
		NotFound(c, apperr.MessageOf(err))
	case apperr.KindConflict:
		Conflict(c, apperr.MessageOf(err))
	case apperr.KindForbidden:
		Forbidden(c, apperr.MessageOf(err))
	case apperr.KindUnauthorized:
		Unauthorized(c, apperr.MessageOf(err))
	default:
		InternalError(c, err)
	}
}
