package handlers

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kingezdev/GreenGrass/middleware"
	"github.com/Kingezdev/GreenGrass/models"
	"github.com/Kingezdev/GreenGrass/payment"
	"github.com/Kingezdev/GreenGrass/utils"
)

// SessionStore keeps in-flight payment sessions. Sessions are ephemeral:
// the store's TTL is the documented stand-in for a stalled-processing
// policy, which the workflow itself deliberately does not define.
type SessionStore interface {
	Get(ctx context.Context, key string) (*payment.Session, bool, error)
	Put(ctx context.Context, key string, s *payment.Session) error
	Delete(ctx context.Context, key string) error
}

// TransactionLog records payment attempts durably.
type TransactionLog interface {
	Create(ctx context.Context, tx models.Transaction) error
	MarkStatus(ctx context.Context, reference, status, gatewayID string, completedAt time.Time) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Transaction, error)
}

// PropertyChecker verifies a listing exists before checkout begins.
type PropertyChecker interface {
	Exists(ctx context.Context, externalID string) (bool, error)
}

type PaymentController struct {
	sessions SessionStore
	txlog    TransactionLog
	props    PropertyChecker
}

func NewPaymentController(sessions SessionStore, txlog TransactionLog, props PropertyChecker) *PaymentController {
	return &PaymentController{sessions: sessions, txlog: txlog, props: props}
}

// SessionTTL reads the payment session lifetime from the environment.
func SessionTTL() time.Duration {
	if v := os.Getenv("PAYMENT_SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return 30 * time.Minute
}

// sessionKey scopes a session to one tenant-property pair; at most one
// active session exists per pair.
func sessionKey(session models.Session, propertyID string) string {
	return "paysession:" + session.UserID.Hex() + ":" + propertyID
}

// BeginCheckout creates a fresh payment session in the initiation stage
// for the given property. An existing in-flight session for the same
// pair is returned instead of being replaced.
func (pc *PaymentController) BeginCheckout(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.Param("propertyId")
	if !utils.IsValidExternalID(propertyID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	exists, err := pc.props.Exists(ctx, propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check property"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	key := sessionKey(session, propertyID)
	if existing, found, err := pc.sessions.Get(ctx, key); err == nil && found {
		return c.JSON(http.StatusOK, existing)
	}

	paySession := payment.NewSession(propertyID)
	if err := pc.sessions.Put(ctx, key, paySession); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start checkout"})
	}
	return c.JSON(http.StatusCreated, paySession)
}

// GetSession returns the current payment session for the tenant-property
// pair, for rendering whichever stage the checkout is in.
func (pc *PaymentController) GetSession(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.Param("propertyId")

	paySession, found, err := pc.sessions.Get(c.Request().Context(), sessionKey(session, propertyID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load session"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No checkout in progress"})
	}
	return c.JSON(http.StatusOK, paySession)
}

// SubmitPayment moves the session from initiation to processing with the
// confirmed payment details and opens a pending transaction record.
func (pc *PaymentController) SubmitPayment(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.Param("propertyId")

	var details payment.Details
	if err := c.Bind(&details); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&details); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Amount and method are required"})
	}

	ctx := c.Request().Context()
	key := sessionKey(session, propertyID)
	paySession, found, err := pc.sessions.Get(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load session"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No checkout in progress"})
	}

	if !paySession.Submit(details) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Payment already submitted"})
	}
	paySession.Reference = uuid.NewString()

	if err := pc.txlog.Create(ctx, models.Transaction{
		Reference:  paySession.Reference,
		UserID:     session.UserID,
		PropertyID: propertyID,
		Amount:     details.Amount,
		Currency:   "NGN",
		Method:     details.Method,
		Status:     models.TxPending,
		CreatedAt:  time.Now(),
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record transaction"})
	}

	if err := pc.sessions.Put(ctx, key, paySession); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save session"})
	}
	return c.JSON(http.StatusOK, paySession)
}

// ConfirmPayment applies the backend's settlement signal. A confirm for
// a session that is not processing is acknowledged but changes nothing.
func (pc *PaymentController) ConfirmPayment(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.Param("propertyId")

	var tx payment.Transaction
	if err := c.Bind(&tx); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&tx); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Transaction id is required"})
	}

	ctx := c.Request().Context()
	key := sessionKey(session, propertyID)
	paySession, found, err := pc.sessions.Get(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load session"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No checkout in progress"})
	}

	if !paySession.Confirm(tx) {
		// Late or duplicate signal; idempotent no-op.
		return c.JSON(http.StatusOK, paySession)
	}

	if err := pc.txlog.MarkStatus(ctx, paySession.Reference, models.TxSuccessful, tx.ID, time.Now()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record transaction"})
	}
	if err := pc.sessions.Put(ctx, key, paySession); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save session"})
	}
	return c.JSON(http.StatusOK, paySession)
}

// FailPayment applies the backend's failure signal: the error is
// recorded and the session returns to initiation for an explicit retry.
func (pc *PaymentController) FailPayment(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.Param("propertyId")

	var failure payment.Failure
	if err := c.Bind(&failure); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	ctx := c.Request().Context()
	key := sessionKey(session, propertyID)
	paySession, found, err := pc.sessions.Get(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load session"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No checkout in progress"})
	}

	reference := paySession.Reference
	if !paySession.Fail(failure) {
		return c.JSON(http.StatusOK, paySession)
	}

	if err := pc.txlog.MarkStatus(ctx, reference, models.TxFailed, "", time.Now()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record transaction"})
	}
	if err := pc.sessions.Put(ctx, key, paySession); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save session"})
	}
	return c.JSON(http.StatusOK, paySession)
}

// AbandonCheckout discards the session. Abandonment is a caller action,
// not a workflow stage; the open transaction record, if any, is marked
// abandoned.
func (pc *PaymentController) AbandonCheckout(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.Param("propertyId")

	ctx := c.Request().Context()
	key := sessionKey(session, propertyID)
	paySession, found, err := pc.sessions.Get(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load session"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No checkout in progress"})
	}

	if paySession.Reference != "" && !paySession.Done() {
		_ = pc.txlog.MarkStatus(ctx, paySession.Reference, models.TxAbandoned, "", time.Now())
	}
	if err := pc.sessions.Delete(ctx, key); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to discard session"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Checkout abandoned"})
}

// ListTransactions returns the caller's payment history, newest first.
func (pc *PaymentController) ListTransactions(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	transactions, err := pc.txlog.ListByUser(c.Request().Context(), session.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch transactions"})
	}
	return c.JSON(http.StatusOK, transactions)
}

// redisSessionStore keeps payment sessions in redis under a TTL.
type redisSessionStore struct {
	ttl time.Duration
}

// NewRedisSessionStore builds the production SessionStore on the shared
// redis client.
func NewRedisSessionStore(ttl time.Duration) SessionStore {
	return &redisSessionStore{ttl: ttl}
}

func (r *redisSessionStore) Get(ctx context.Context, key string) (*payment.Session, bool, error) {
	var s payment.Session
	found, err := utils.GetCached(ctx, key, &s)
	if err != nil || !found {
		return nil, false, err
	}
	return &s, true, nil
}

func (r *redisSessionStore) Put(ctx context.Context, key string, s *payment.Session) error {
	return utils.SetCached(ctx, key, s, r.ttl)
}

func (r *redisSessionStore) Delete(ctx context.Context, key string) error {
	return utils.DeleteCached(ctx, key)
}
