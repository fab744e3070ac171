package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kingezdev/GreenGrass/middleware"
	"github.com/Kingezdev/GreenGrass/moderation"
	"github.com/Kingezdev/GreenGrass/models"
	"github.com/Kingezdev/GreenGrass/utils"
)

// Rejection paths run before any store access, so the controller needs
// no database here.
func sendMessage(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = utils.NewRequestValidator()

	mc := &MessageController{policy: moderation.ContactLeakPolicy{}}

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, models.Session{UserID: primitive.NewObjectID(), Name: "Tunde Ade", Role: models.RoleTenant})

	if err := mc.SendMessage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestSendMessageBlocksContactInfo(t *testing.T) {
	rec := sendMessage(t, `{"threadId":"PROP1001:tunde","text":"call me 08012345678"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusUnprocessableEntity, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), moderation.ReasonContactInfo) {
		t.Fatalf("response missing rejection reason: %s", rec.Body)
	}
}

func TestSendMessageBlocksEmailAddresses(t *testing.T) {
	rec := sendMessage(t, `{"threadId":"PROP1001:tunde","text":"reach me at tunde@example.com"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	rec := sendMessage(t, `{"threadId":"PROP1001:tunde","text":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSendMessageRequiresThread(t *testing.T) {
	rec := sendMessage(t, `{"text":"Is it still available?"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
