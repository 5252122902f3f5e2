package controllers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/pkg/apperrors"
)

// bindBody decodes a JSON or form body into req. An empty body leaves req
// zeroed so the service reports every required field. Values of the wrong
// type are reported as {field: "invalid"}.
func bindBody(ctx *gin.Context, req interface{}) error {
	err := ctx.ShouldBind(req)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	v := apperrors.NewValidationError()
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		v.Add(typeErr.Field, apperrors.ReasonInvalid)
	} else {
		v.Add("body", apperrors.ReasonInvalid)
	}
	return v
}
