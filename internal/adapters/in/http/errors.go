package http

import (
	"errors"
	"fmt"
	"net/http"

	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	writeFailureMessage = "The change could not be saved. Please try again."
	internalMessage     = "Something went wrong."
)

// errorResponse maps an error returned by a handler to its status and body.
func errorResponse(err error) (int, Error) {
	var (
		httpErr *echo.HTTPError
		authErr *errs.AuthError
	)

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, Error{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message)}

	case errors.As(err, &authErr):
		status := http.StatusUnauthorized
		switch authErr.Code {
		case errs.AuthCodeTooManyRequests:
			status = http.StatusTooManyRequests
		case errs.AuthCodeUserDisabled:
			status = http.StatusForbidden
		case errs.AuthCodeEmailInUse:
			status = http.StatusConflict
		}
		return status, Error{Code: status, Message: errs.UserMessage(err), Reason: authErr.Code}

	case errors.Is(err, errs.ErrTransitionRejected):
		if errors.Is(err, commands.ErrPartnerNotApproved) {
			return http.StatusForbidden, Error{Code: http.StatusForbidden, Message: err.Error(), Reason: "partner_not_approved"}
		}
		return http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error(), Reason: "transition_rejected"}

	case errors.Is(err, errs.ErrProfileNotFound):
		return http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error(), Reason: "profile_not_found"}

	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error(), Reason: "not_found"}

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error(), Reason: "invalid_value"}

	case errors.Is(err, errs.ErrWriteFailure):
		return http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: writeFailureMessage,
			Reason:  "write_failure",
		}
	}

	return http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: internalMessage}
}

// NewErrorHandler renders handler errors as Error bodies. Server side failures are logged.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Warn("writing error response", zap.Error(err))
		}
	}
}
