package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
	"github.com/mohammadpnp/rental-import/internal/domain/rental"
)

// RentalRecordRepository writes the target records produced by
// successful import rows. Every insert is a single independently
// atomic statement: there are no cross-row transactions, so partial
// application of a batch is a designed-for outcome.
type RentalRecordRepository struct {
	pool *pgxpool.Pool
}

func NewRentalRecordRepository(pool *pgxpool.Pool) *RentalRecordRepository {
	return &RentalRecordRepository{pool: pool}
}

func (r *RentalRecordRepository) FindCustomerIDByName(ctx context.Context, name string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, "SELECT id FROM customers WHERE full_name = $1 LIMIT 1", name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrCustomerNotFound
		}
		return "", fmt.Errorf("find customer: %w", err)
	}
	return id, nil
}

// UpsertCustomerByName resolves a name to a customer id, creating the
// customer if absent. The ON CONFLICT clause makes concurrent imports
// referencing the same new name converge on one row.
func (r *RentalRecordRepository) UpsertCustomerByName(ctx context.Context, name string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
INSERT INTO customers (full_name, created_at, updated_at)
VALUES ($1, NOW(), NOW())
ON CONFLICT (full_name) DO UPDATE SET updated_at = NOW()
RETURNING id
`, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert customer: %w", err)
	}
	return id, nil
}

func (r *RentalRecordRepository) InsertAgreement(ctx context.Context, agreement rental.Agreement) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO agreements
  (agreement_number, vehicle_plate, customer_id, driver_license, checkout_date, checkin_date, return_date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`,
		agreement.AgreementNumber,
		agreement.VehiclePlate,
		agreement.CustomerID,
		agreement.DriverLicense,
		agreement.CheckoutDate,
		agreement.CheckinDate,
		agreement.ReturnDate,
		agreement.Status,
	)
	if err != nil {
		return fmt.Errorf("insert agreement %s: %w", agreement.AgreementNumber, err)
	}
	return nil
}

func (r *RentalRecordRepository) InsertPayment(ctx context.Context, payment rental.Payment) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO payments
  (lease_id, customer_id, amount, payment_date, method, transaction_ref, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`,
		payment.LeaseID,
		payment.CustomerID,
		payment.Amount.String(),
		payment.PaymentDate,
		payment.Method,
		payment.TransactionRef,
		payment.Description,
		payment.Status,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *RentalRecordRepository) InsertTransaction(ctx context.Context, transaction rental.Transaction) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO transactions
  (lease_id, customer_id, amount, payment_date, method, transaction_ref, description, type, vehicle_plate, vehicle, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
`,
		transaction.LeaseID,
		transaction.CustomerID,
		transaction.Amount.String(),
		transaction.PaymentDate,
		transaction.Method,
		transaction.TransactionRef,
		transaction.Description,
		transaction.Type,
		transaction.VehiclePlate,
		transaction.Vehicle,
		transaction.Status,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *RentalRecordRepository) InsertInstallment(ctx context.Context, installment rental.Installment) error {
	var balance *string
	if installment.Balance.Valid {
		value := installment.Balance.Decimal.String()
		balance = &value
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO installments
  (cheque_number, amount, due_date, drawee_bank, balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
`,
		installment.ChequeNumber,
		installment.Amount.String(),
		installment.DueDate,
		installment.DraweeBank,
		balance,
	)
	if err != nil {
		return fmt.Errorf("insert installment %s: %w", installment.ChequeNumber, err)
	}
	return nil
}
