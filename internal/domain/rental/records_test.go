package rental_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohammadpnp/rental-import/internal/domain/rental"
)

func TestNewAgreementValidation(t *testing.T) {
	t.Parallel()

	checkout := time.Date(2024, 3, 27, 0, 0, 0, 0, time.UTC)
	checkin := checkout.AddDate(0, 0, 5)

	if _, err := rental.NewAgreement("", "B-1", "cust-1", "DL-1", checkout, checkin, nil, "active"); !errors.Is(err, rental.ErrMissingAgreementNumber) {
		t.Fatalf("expected ErrMissingAgreementNumber, got %v", err)
	}
	if _, err := rental.NewAgreement("AGR-1", "B-1", "", "DL-1", checkout, checkin, nil, "active"); !errors.Is(err, rental.ErrMissingCustomer) {
		t.Fatalf("expected ErrMissingCustomer, got %v", err)
	}

	agreement, err := rental.NewAgreement("AGR-1", "B-1", "cust-1", "DL-1", checkout, checkin, nil, "active")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agreement.ReturnDate != nil {
		t.Fatal("expected nil return date")
	}
}

func TestNewPaymentValidation(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	if _, err := rental.NewPayment("L-1", "", decimal.NewFromInt(10), date, "cash", "", "", "completed"); !errors.Is(err, rental.ErrMissingCustomer) {
		t.Fatalf("expected ErrMissingCustomer, got %v", err)
	}
	if _, err := rental.NewPayment("L-1", "cust-1", decimal.NewFromInt(-10), date, "cash", "", "", "completed"); !errors.Is(err, rental.ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}

	payment, err := rental.NewPayment("L-1", "cust-1", decimal.RequireFromString("1234.50"), date, "cash", "TX-1", "rent", "completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Amount.String() != "1234.5" {
		t.Fatalf("unexpected amount: %s", payment.Amount.String())
	}
}

func TestNewInstallmentValidation(t *testing.T) {
	t.Parallel()

	due := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	if _, err := rental.NewInstallment("", decimal.NewFromInt(100), due, "QNB", decimal.NullDecimal{}); !errors.Is(err, rental.ErrMissingChequeNumber) {
		t.Fatalf("expected ErrMissingChequeNumber, got %v", err)
	}

	installment, err := rental.NewInstallment("100234", decimal.NewFromInt(100), due, "QNB", decimal.NullDecimal{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if installment.Balance.Valid {
		t.Fatal("expected empty balance")
	}
}
