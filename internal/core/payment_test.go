package core

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/model"
)

func paymentScan(id, orderID, status string) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = orderID
		*(dest[2].(*string)) = "stripe"
		*(dest[3].(*string)) = "card"
		*(dest[4].(*int64)) = 5000
		*(dest[5].(*string)) = "USD"
		*(dest[6].(*string)) = status
		*(dest[7].(*string)) = "ch_123"
		*(dest[8].(*time.Time)) = time.Now()
		*(dest[9].(*time.Time)) = time.Now()
		return nil
	}
}

func TestPaymentService_Refund_RequiresSucceeded(t *testing.T) {
	db := &mockDB{}
	svc := NewPaymentService(db, newTestOrderService(db, nil))
	ctx := context.Background()

	db.On("QueryRow", ctx, sqlContaining("FROM payments WHERE id"), []any{"pay1"}).Return(&mockRow{scanFunc: paymentScan("pay1", "o1", model.PaymentPending)})

	_, err := svc.Refund(ctx, "pay1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "only succeeded payments")
}

func TestPaymentService_Refund_MovesOrderToRefunded(t *testing.T) {
	db := &mockDB{}
	pub := &recordingPublisher{}
	svc := NewPaymentService(db, newTestOrderService(db, pub))
	ctx := context.Background()

	db.On("QueryRow", ctx, sqlContaining("FROM payments WHERE id"), []any{"pay1"}).Return(&mockRow{scanFunc: paymentScan("pay1", "o1", model.PaymentSucceeded)})
	db.On("QueryRow", ctx, sqlContaining("UPDATE payments SET status"), []any{model.PaymentRefunded, "pay1", model.PaymentSucceeded}).
		Return(&mockRow{scanFunc: paymentScan("pay1", "o1", model.PaymentRefunded)})
	db.On("QueryRow", ctx, sqlContaining("SELECT status FROM orders"), []any{"o1"}).Return(statusRow(model.OrderPaid))
	db.On("QueryRow", ctx, sqlContaining("UPDATE orders SET status"), []any{model.OrderRefunded, "o1", model.OrderPaid}).
		Return(&mockRow{scanFunc: orderScan("o1", model.OrderRefunded, nil)})

	p, err := svc.Refund(ctx, "pay1")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRefunded, p.Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, model.OrderRefunded, pub.events[0].Status)
	db.AssertExpectations(t)
}

func TestPaymentService_Refund_LeavesCancelledOrder(t *testing.T) {
	db := &mockDB{}
	svc := NewPaymentService(db, newTestOrderService(db, nil))
	ctx := context.Background()

	db.On("QueryRow", ctx, sqlContaining("FROM payments WHERE id"), []any{"pay1"}).Return(&mockRow{scanFunc: paymentScan("pay1", "o1", model.PaymentSucceeded)})
	db.On("QueryRow", ctx, sqlContaining("UPDATE payments SET status"), mock.Anything).Return(&mockRow{scanFunc: paymentScan("pay1", "o1", model.PaymentRefunded)})
	db.On("QueryRow", ctx, sqlContaining("SELECT status FROM orders"), []any{"o1"}).Return(statusRow(model.OrderCancelled))

	_, err := svc.Refund(ctx, "pay1")
	require.NoError(t, err)
	db.AssertNotCalled(t, "QueryRow", ctx, sqlContaining("UPDATE orders"), mock.Anything)
}

func TestPaymentService_Refund_OrderUpdateFailureKeepsRefund(t *testing.T) {
	db := &mockDB{}
	svc := NewPaymentService(db, newTestOrderService(db, nil))
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	ctx := logger.WithContext(context.Background())

	db.On("QueryRow", ctx, sqlContaining("FROM payments WHERE id"), []any{"pay1"}).Return(&mockRow{scanFunc: paymentScan("pay1", "o1", model.PaymentSucceeded)})
	db.On("QueryRow", ctx, sqlContaining("UPDATE payments SET status"), mock.Anything).Return(&mockRow{scanFunc: paymentScan("pay1", "o1", model.PaymentRefunded)})
	db.On("QueryRow", ctx, sqlContaining("SELECT status FROM orders"), []any{"o1"}).Return(statusRow(model.OrderPaid))
	db.On("QueryRow", ctx, sqlContaining("UPDATE orders SET status"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error { return errors.New("connection reset") }})

	p, err := svc.Refund(ctx, "pay1")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRefunded, p.Status)
	assert.Contains(t, logs.String(), "order status not updated")
	assert.Contains(t, logs.String(), `"order_id":"o1"`)
	assert.Contains(t, logs.String(), "connection reset")
}

func TestPaymentService_Create_SucceededMarksOrderPaid(t *testing.T) {
	db := &mockDB{}
	svc := NewPaymentService(db, newTestOrderService(db, nil))
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("INSERT INTO payments"), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
	db.On("QueryRow", ctx, sqlContaining("SELECT status FROM orders"), []any{"o1"}).Return(statusRow(model.OrderPending))
	db.On("QueryRow", ctx, sqlContaining("UPDATE orders SET status"), []any{model.OrderPaid, "o1", model.OrderPending}).
		Return(&mockRow{scanFunc: orderScan("o1", model.OrderPaid, nil)})

	p := &model.Payment{ID: "pay1", OrderID: "o1", Provider: "stripe", Method: "card", AmountCents: 5000, Status: model.PaymentSucceeded}
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, "USD", p.Currency)
	db.AssertExpectations(t)
}

func TestPaymentService_Create_SucceededOnPaidOrder(t *testing.T) {
	db := &mockDB{}
	svc := NewPaymentService(db, newTestOrderService(db, nil))
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("INSERT INTO payments"), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
	db.On("QueryRow", ctx, sqlContaining("SELECT status FROM orders"), []any{"o1"}).Return(statusRow(model.OrderShipped))

	p := &model.Payment{ID: "pay2", OrderID: "o1", Status: model.PaymentSucceeded}
	assert.NoError(t, svc.Create(ctx, p))
}

func TestPaymentService_Create_DefaultsPending(t *testing.T) {
	db := &mockDB{}
	svc := NewPaymentService(db, newTestOrderService(db, nil))
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("INSERT INTO payments"), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	p := &model.Payment{ID: "pay3", OrderID: "o1"}
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, model.PaymentPending, p.Status)
	db.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
}
