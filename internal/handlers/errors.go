package handlers

import (
	"net/http"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// httpError maps an application error to the HTTP status it should produce.
func httpError(err error) *echo.HTTPError {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var status int
	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeValidation, apperrors.ErrCodeInvalidDate, apperrors.ErrCodeInvalidDuration:
		status = http.StatusBadRequest
	case apperrors.ErrCodeDuplicateItem, apperrors.ErrCodeDuplicateRequest, apperrors.ErrCodeInvalidTransition:
		status = http.StatusConflict
	case apperrors.ErrCodePermissionDenied:
		status = http.StatusForbidden
	case apperrors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrCodeUpstreamUnavailable, apperrors.ErrCodeIncompleteMetadata:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	return echo.NewHTTPError(status, echo.Map{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// authUser pulls the JWT claims stored by the auth middleware.
func authUser(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}
