package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidCard         = "INVALID_CARD"
	CodeGameExists          = "GAME_EXISTS"
	CodeNoActiveLobby       = "NO_ACTIVE_LOBBY"
	CodeNoActiveGame        = "NO_ACTIVE_GAME"
	CodeAlreadyJoined       = "ALREADY_JOINED"
	CodeTableFull           = "TABLE_FULL"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeWrongPhase          = "WRONG_PHASE"
	CodeNotSeated           = "NOT_SEATED"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeNotInHand           = "NOT_IN_HAND"
	CodeMustFollowSuit      = "MUST_FOLLOW_SUIT"
	CodeUnknownSender       = "UNKNOWN_SENDER"
	CodeRoundNotFound       = "ROUND_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveGame, "No game in this room"}}
	case errors.Is(err, model.ErrNoActiveLobby):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveLobby, "No open lobby in this room"}}
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoundNotFound, "Round not found"}}
	case errors.Is(err, model.ErrGameExists):
		return &httpError{http.StatusConflict, APIError{CodeGameExists, "A game already exists in this room"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined"}}
	case errors.Is(err, model.ErrTableFull):
		return &httpError{http.StatusConflict, APIError{CodeTableFull, "Table is full"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to deal"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, err.Error()}}
	case errors.Is(err, model.ErrNotSeated):
		return &httpError{http.StatusForbidden, APIError{CodeNotSeated, "Not seated in this game"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidCard):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCard, "Invalid card"}}
	case errors.Is(err, model.ErrNotInHand):
		return &httpError{http.StatusConflict, APIError{CodeNotInHand, "Card is not in hand"}}
	case errors.Is(err, model.ErrMustFollowSuit):
		return &httpError{http.StatusConflict, APIError{CodeMustFollowSuit, err.Error()}}
	case errors.Is(err, model.ErrUnknownSender):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownSender, "Sender could not be identified"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
