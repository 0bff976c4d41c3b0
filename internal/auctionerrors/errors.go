package auctionerrors

import (
	"errors"
	"fmt"
)

// Client-side validation errors. Requests failing these are never sent.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrBidBelowMinimum  = errors.New("bid below minimum")
	ErrImageType        = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
	ErrImageDecode      = errors.New("image decode failed")
	ErrPayloadTooLarge  = errors.New("request payload too large")
)

// Backend-side rule violations, shared with the stub server
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrAuctionEnded    = errors.New("auction has ended")
	ErrBidTooLow       = errors.New("bid amount too low")
	ErrNotOwner        = errors.New("not the auction owner")
	ErrInvalidAuction  = errors.New("invalid auction data")
)

// NetworkError marks a request that never produced a server response.
// Retrying is left to the user; nothing retries automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError carries a structured rejection ({error} body) from the backend.
// The server is authoritative: a ServerError overrides any client-side
// validation that previously accepted the same input.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
}

// Display converts any error from a user action into the string shown to the
// user. Server messages are passed through verbatim under a category prefix;
// everything else gets a stable local message.
func Display(err error) string {
	var serverErr *ServerError
	var netErr *NetworkError

	switch {
	case errors.As(err, &serverErr):
		if serverErr.Status == 422 {
			return "Validation error: " + serverErr.Message
		}
		return "Server error: " + serverErr.Message
	case errors.As(err, &netErr):
		return "Network error: Please check your connection and try again"
	case errors.Is(err, ErrImageDecode):
		return "Image error: The selected file could not be read"
	case errors.Is(err, ErrImageTooLarge):
		return "Image size error: Please select an image smaller than 2MB"
	case errors.Is(err, ErrImageType):
		return "Please upload a valid image file (JPEG, PNG, or GIF)"
	case errors.Is(err, ErrNotAuthenticated):
		return "Please log in to place a bid"
	case errors.Is(err, ErrBidBelowMinimum):
		return "Bid is below the minimum for this auction"
	case err != nil:
		return "Error: " + err.Error()
	default:
		return ""
	}
}
