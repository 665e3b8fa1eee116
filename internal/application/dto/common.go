package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse error 409 con el detalle de disponibilidad que
// la pantalla necesita para el mensaje al usuario.
type InsufficientStockResponse struct {
	Code        string          `json:"code"`
	Message     string          `json:"message"`
	FeedType    string          `json:"feed_type"`
	AvailableKg decimal.Decimal `json:"available_kg"`
	RequiredKg  decimal.Decimal `json:"required_kg"`
}
