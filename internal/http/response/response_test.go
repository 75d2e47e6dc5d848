package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, err)
	return rec
}

func TestRespondAPIErrorTaggedResults(t *testing.T) {
	for _, tc := range []struct {
		err  error
		kind string
	}{
		{err: apierr.Conflict("One user one agreement"), kind: "conflict"},
		{err: apierr.NotFound("Coupon code not found"), kind: "not_found"},
	} {
		rec := respond(tc.err)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status want=200 got=%d", tc.kind, rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if v, ok := body["insertedId"]; !ok || v != nil {
			t.Fatalf("%s: insertedId must be present and null, body=%s", tc.kind, rec.Body.String())
		}
		if body["kind"] != tc.kind || body["message"] != tc.err.Error() {
			t.Fatalf("%s: unexpected body %s", tc.kind, rec.Body.String())
		}
	}
}

func TestRespondAPIErrorStatuses(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
	}{
		{err: apierr.Unauthenticated("unauthorized access"), status: http.StatusUnauthorized},
		{err: apierr.Forbidden("forbidden access"), status: http.StatusForbidden},
		{err: apierr.InvalidArgument("bad"), status: http.StatusBadRequest},
		{err: apierr.Internal(errors.New("db down")), status: http.StatusInternalServerError},
		{err: errors.New("raw"), status: http.StatusInternalServerError},
	} {
		rec := respond(tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%v: status want=%d got=%d", tc.err, tc.status, rec.Code)
		}
		var env ErrorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if tc.status == http.StatusInternalServerError && env.Error.Message != "internal error" {
			t.Fatalf("internal detail leaked: %q", env.Error.Message)
		}
	}
}
