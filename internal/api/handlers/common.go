package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/devlinkhq/devlink/internal/utils"
)

// FieldError is one entry in the {errors:[...]} validation response.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// writeError translates service errors into the product's HTTP
// contract: domain not-found is a 400 with a message (the profile page
// treats it as user feedback, not a routing miss), upstream lookup
// failures are 404, and anything unexpected is a bare 500. The error is
// attached to the gin context so the request logger records the cause.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		switch ae.Code {
		case utils.CodeInvalidArgument, utils.CodeNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"msg": ae.Message})
			return
		case utils.CodeUpstream:
			c.JSON(http.StatusNotFound, gin.H{"msg": ae.Message})
			return
		case utils.CodeUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"msg": ae.Message})
			return
		}
	}

	c.String(http.StatusInternalServerError, "Server Error")
}

// writeBindingError reports body-validation failures as a field-error
// list. Non-validator failures (malformed JSON and friends) get a
// generic message.
func writeBindingError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Msg:   fieldErrorMessage(fe),
				Param: strings.ToLower(fe.Field()),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": out})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
}

func fieldErrorMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "No token, authorization denied", nil))
	return "", false
}
