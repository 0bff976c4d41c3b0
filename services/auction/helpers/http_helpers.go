package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"auction-client/internal/auctionerrors"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends the contract's {error} envelope for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request payload: %v", err))
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps store/domain errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "Auction not found"
	case errors.Is(err, auctionerrors.ErrNotOwner):
		return http.StatusForbidden, "You do not own this auction"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return http.StatusBadRequest, "Auction has ended"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "Bid amount too low"
	case errors.Is(err, auctionerrors.ErrInvalidAuction):
		return http.StatusUnprocessableEntity, "Invalid auction data"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// ParseServerError converts a non-2xx response into the typed rejection the
// client propagates. The {error} body message is preserved verbatim; an
// unparseable body falls back to the generic status text.
func ParseServerError(status int, body []byte) *auctionerrors.ServerError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Error
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &auctionerrors.ServerError{Status: status, Message: message}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
