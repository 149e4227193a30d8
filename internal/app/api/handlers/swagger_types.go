package handlers

import (
	"github.com/olharfest/inscricao-backend/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespCreateInscription wraps the inscription creation result in the standard envelope.
type RespCreateInscription struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    createInscriptionResp    `json:"data"`
}

// RespCreateCheckout wraps the checkout creation result in the standard envelope.
type RespCreateCheckout struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    createCheckoutResp       `json:"data"`
}

// RespValidateInscription wraps the admin validation result in the standard envelope.
type RespValidateInscription struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    validateInscriptionResp  `json:"data"`
}
