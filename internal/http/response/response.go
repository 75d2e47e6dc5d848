package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Result is the soft-failure payload for duplicate and missing records. It
// is sent with 200 and a null insertedId so existing clients keep working;
// Kind tells the two causes apart.
type Result struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
	Kind       string  `json:"kind"`
}

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// AbortError is RespondError for middleware.
func AbortError(c *gin.Context, status int, code string, err error) {
	RespondError(c, status, code, err)
	c.Abort()
}

// RespondAPIError writes err according to its kind. Conflict and not-found
// become a tagged Result; everything else is an error envelope.
func RespondAPIError(c *gin.Context, err error) {
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
		return
	}
	switch ae.Kind {
	case apierr.KindConflict, apierr.KindNotFound:
		c.JSON(http.StatusOK, Result{Message: ae.Error(), InsertedID: nil, Kind: string(ae.Kind)})
	case apierr.KindInternal:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, ae.Code, errors.New("internal error"))
	default:
		RespondError(c, ae.Status, ae.Code, ae)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondInserted(c *gin.Context, id uuid.UUID) {
	RespondOK(c, InsertResult{Acknowledged: true, InsertedID: id.String()})
}

func RespondUpdated(c *gin.Context, matched int64) {
	RespondOK(c, UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: matched})
}

func RespondDeleted(c *gin.Context, deleted int64) {
	RespondOK(c, DeleteResult{Acknowledged: true, DeletedCount: deleted})
}
