package response

import (
	"IronProof/internal/api/dto"
	"IronProof/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		OK:   true,
		Data: data,
	})
}

// Fail 失败返回封装，message 即对外错误槽位
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{
		OK:    false,
		Error: message,
	})
}

// Error 处理错误
// 未登记的错误一律折叠成 internal，细节只进日志不出网
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, service.ErrInvalidPayload.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, service.ErrInvalidPayload.Error())
		return
	}

	status, ok := service.ErrorMap[err]
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, http.StatusInternalServerError, service.ErrInternal.Error())
		return
	}
	Fail(c, status, err.Error())
}
