package rental

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID       string
	FullName string
}

// Agreement is one lease row produced by a successful agreement import.
type Agreement struct {
	AgreementNumber string
	VehiclePlate    string
	CustomerID      string
	DriverLicense   string
	CheckoutDate    time.Time
	CheckinDate     time.Time
	ReturnDate      *time.Time
	Status          string
}

func NewAgreement(number, plate, customerID, license string, checkout, checkin time.Time, returnDate *time.Time, status string) (Agreement, error) {
	if strings.TrimSpace(number) == "" {
		return Agreement{}, ErrMissingAgreementNumber
	}
	if strings.TrimSpace(customerID) == "" {
		return Agreement{}, ErrMissingCustomer
	}

	return Agreement{
		AgreementNumber: number,
		VehiclePlate:    plate,
		CustomerID:      customerID,
		DriverLicense:   license,
		CheckoutDate:    checkout,
		CheckinDate:     checkin,
		ReturnDate:      returnDate,
		Status:          status,
	}, nil
}

// Payment and Transaction share the same import layout; transactions
// additionally carry a type and the vehicle columns.
type Payment struct {
	LeaseID        string
	CustomerID     string
	Amount         decimal.Decimal
	PaymentDate    time.Time
	Method         string
	TransactionRef string
	Description    string
	Status         string
}

func NewPayment(leaseID, customerID string, amount decimal.Decimal, date time.Time, method, ref, description, status string) (Payment, error) {
	if strings.TrimSpace(customerID) == "" {
		return Payment{}, ErrMissingCustomer
	}
	if amount.IsNegative() {
		return Payment{}, ErrNegativeAmount
	}

	return Payment{
		LeaseID:        leaseID,
		CustomerID:     customerID,
		Amount:         amount,
		PaymentDate:    date,
		Method:         method,
		TransactionRef: ref,
		Description:    description,
		Status:         status,
	}, nil
}

type Transaction struct {
	Payment
	Type         string
	VehiclePlate string
	Vehicle      string
}

func NewTransaction(payment Payment, txType, plate, vehicle string) Transaction {
	return Transaction{
		Payment:      payment,
		Type:         txType,
		VehiclePlate: plate,
		Vehicle:      vehicle,
	}
}

// Installment is one post-dated cheque row.
type Installment struct {
	ChequeNumber string
	Amount       decimal.Decimal
	DueDate      time.Time
	DraweeBank   string
	Balance      decimal.NullDecimal
}

func NewInstallment(chequeNumber string, amount decimal.Decimal, dueDate time.Time, draweeBank string, balance decimal.NullDecimal) (Installment, error) {
	if strings.TrimSpace(chequeNumber) == "" {
		return Installment{}, ErrMissingChequeNumber
	}
	if amount.IsNegative() {
		return Installment{}, ErrNegativeAmount
	}

	return Installment{
		ChequeNumber: chequeNumber,
		Amount:       amount,
		DueDate:      dueDate,
		DraweeBank:   draweeBank,
		Balance:      balance,
	}, nil
}
