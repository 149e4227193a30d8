package handlers

import (
	"errors"

	adminsvc "github.com/olharfest/inscricao-backend/internal/app/service/admin"
	"github.com/olharfest/inscricao-backend/internal/app/service/checkout"
	"github.com/olharfest/inscricao-backend/internal/app/service/inscription"
	"github.com/olharfest/inscricao-backend/internal/platform/gateway"
	"github.com/olharfest/inscricao-backend/pkg/response"
)

// codeForError maps service sentinel errors to envelope codes.
func codeForError(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, inscription.ErrUnauthenticated),
		errors.Is(err, checkout.ErrUnauthenticated),
		errors.Is(err, adminsvc.ErrUnauthenticated):
		return response.APIResponseCodeUnauthenticated
	case errors.Is(err, inscription.ErrInvalidArgument),
		errors.Is(err, checkout.ErrInvalidArgument):
		return response.APIResponseCodeBadRequest
	case errors.Is(err, inscription.ErrAlreadyExists),
		errors.Is(err, adminsvc.ErrAlreadyFinalized):
		return response.APIResponseCodeAlreadyExists
	case errors.Is(err, inscription.ErrNotFound),
		errors.Is(err, adminsvc.ErrNotFound):
		return response.APIResponseCodeNotFound
	case errors.Is(err, adminsvc.ErrPermissionDenied):
		return response.APIResponseCodePermissionDenied
	case errors.Is(err, gateway.ErrUpstream):
		return response.APIResponseCodeUpstream
	default:
		return response.APIResponseCodeError
	}
}
