package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJson 綁定失敗回 422，帶上逐欄位的錯誤，讓呼叫端知道是哪裡不合法
func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  false,
			"message": "Invalid request",
			"errors":  bindingErrors(err),
		})
		return err
	}
	return nil
}

func bindingErrors(err error) gin.H {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := gin.H{}
		for _, fe := range validationErrs {
			fields[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
		return fields
	}
	return gin.H{"body": err.Error()}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
