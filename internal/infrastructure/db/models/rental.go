package models

import "time"

type Customer struct {
	ID        string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FullName  string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string {
	return "customers"
}

type Agreement struct {
	ID              string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	AgreementNumber string `gorm:"size:64;not null;uniqueIndex"`
	VehiclePlate    string `gorm:"size:32"`
	CustomerID      string `gorm:"type:uuid;index;not null"`
	DriverLicense   string `gorm:"size:64"`
	CheckoutDate    time.Time
	CheckinDate     time.Time
	ReturnDate      *time.Time
	Status          string `gorm:"size:32;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Agreement) TableName() string {
	return "agreements"
}

type Payment struct {
	ID             string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	LeaseID        string `gorm:"size:64;index"`
	CustomerID     string `gorm:"type:uuid;index;not null"`
	Amount         string `gorm:"type:numeric(12,2);not null"`
	PaymentDate    time.Time
	Method         string `gorm:"size:32"`
	TransactionRef string `gorm:"size:64"`
	Description    string `gorm:"type:text"`
	Status         string `gorm:"size:32;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Payment) TableName() string {
	return "payments"
}

type Transaction struct {
	ID             string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	LeaseID        string `gorm:"size:64;index"`
	CustomerID     string `gorm:"type:uuid;index;not null"`
	Amount         string `gorm:"type:numeric(12,2);not null"`
	PaymentDate    time.Time
	Method         string `gorm:"size:32"`
	TransactionRef string `gorm:"size:64"`
	Description    string `gorm:"type:text"`
	Type           string `gorm:"size:32"`
	VehiclePlate   string `gorm:"size:32"`
	Vehicle        string `gorm:"size:128"`
	Status         string `gorm:"size:32;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Transaction) TableName() string {
	return "transactions"
}

type Installment struct {
	ID           string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ChequeNumber string `gorm:"size:64;not null"`
	Amount       string `gorm:"type:numeric(12,2);not null"`
	DueDate      time.Time
	DraweeBank   string  `gorm:"size:128"`
	Balance      *string `gorm:"type:numeric(12,2)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Installment) TableName() string {
	return "installments"
}
