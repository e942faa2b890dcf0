package models

import "time"

// Monetary values are persisted as fixed-point strings and computed with
// decimals in the billing package; they never pass through float64.

type Product struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name        string `json:"name" gorm:"type:varchar(255);not null"`
	Category    string `json:"category" gorm:"type:varchar(64)"`
	Brand       string `json:"brand" gorm:"type:varchar(128)"`
	BatchNumber string `json:"batchNumber" gorm:"type:varchar(64)"`
	ExpiryDate  string `json:"expiryDate" gorm:"type:varchar(16)"`
	PackSize    string `json:"packSize" gorm:"type:varchar(32)"`
	HSNCode     string `json:"hsnCode" gorm:"type:varchar(16)"`
	Rate        string `json:"rate" gorm:"type:varchar(32);not null"`
	GSTRate     int    `json:"gstRate" gorm:"not null"`
	Stock       int    `json:"stock" gorm:"not null;default:0"`
	MinStock    int    `json:"minStock" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Customer struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name    string `json:"name" gorm:"type:varchar(255);not null"`
	Mobile  string `json:"mobile" gorm:"type:varchar(16)"` // empty for cash sales
	Email   string `json:"email" gorm:"type:varchar(128)"`
	Address string `json:"address" gorm:"type:text"`
	GSTIN   string `json:"gstin" gorm:"type:varchar(32)"`
	State   string `json:"state" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Invoice struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(64)"`
	InvoiceNumber string  `json:"invoiceNumber" gorm:"uniqueIndex;type:varchar(64);not null"`
	Date          string  `json:"date" gorm:"type:varchar(16);not null"`
	CustomerID    string  `json:"customerId" gorm:"type:varchar(64)"`
	CustomerName  string  `json:"customerName" gorm:"type:varchar(255);not null"`
	CustomerGST   string  `json:"customerGst" gorm:"type:varchar(32)"`
	SubTotal      string  `json:"subTotal" gorm:"type:varchar(32);not null"`
	TotalDiscount string  `json:"totalDiscount" gorm:"type:varchar(32);not null"`
	TotalTax      string  `json:"totalTax" gorm:"type:varchar(32);not null"`
	RoundOff      string  `json:"roundOff" gorm:"type:varchar(32);not null"`
	GrandTotal    string  `json:"grandTotal" gorm:"type:varchar(32);not null"`
	PaymentMode   string  `json:"paymentMode" gorm:"type:varchar(16);not null"`
	Notes         *string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem snapshots the product at sale time. Position keeps the entry
// order, which is what the printed document follows.
type InvoiceItem struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	InvoiceID       string `json:"invoiceId" gorm:"index;type:varchar(64);not null"`
	Position        int    `json:"position" gorm:"not null"`
	ProductID       string `json:"productId" gorm:"type:varchar(64)"`
	Name            string `json:"name" gorm:"type:varchar(255);not null"`
	Category        string `json:"category" gorm:"type:varchar(64)"`
	Brand           string `json:"brand" gorm:"type:varchar(128)"`
	BatchNumber     string `json:"batchNumber" gorm:"type:varchar(64)"`
	ExpiryDate      string `json:"expiryDate" gorm:"type:varchar(16)"`
	PackSize        string `json:"packSize" gorm:"type:varchar(32)"`
	HSNCode         string `json:"hsnCode" gorm:"type:varchar(16)"`
	Rate            string `json:"rate" gorm:"type:varchar(32);not null"`
	GSTRate         int    `json:"gstRate" gorm:"not null"`
	Quantity        int    `json:"quantity" gorm:"not null"`
	DiscountPercent string `json:"discountPercent" gorm:"type:varchar(32);not null;default:'0'"`
	TaxAmount       string `json:"taxAmount" gorm:"type:varchar(32);not null"`
	TotalAmount     string `json:"totalAmount" gorm:"type:varchar(32);not null"`

	CreatedAt time.Time `json:"createdAt"`
}

// Setting is the single issuer record read by the renderer.
type Setting struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	PharmacyName   string `json:"pharmacyName" gorm:"type:varchar(255);not null"`
	Address        string `json:"address" gorm:"type:text"`
	GSTIN          string `json:"gstin" gorm:"type:varchar(32)"`
	DLNumber       string `json:"dlNumber" gorm:"type:varchar(64)"`
	Phone          string `json:"phone" gorm:"type:varchar(16)"`
	Email          string `json:"email" gorm:"type:varchar(128)"`
	BankName       string `json:"bankName" gorm:"type:varchar(128)"`
	AccountNumber  string `json:"accountNumber" gorm:"type:varchar(32)"`
	IFSC           string `json:"ifsc" gorm:"type:varchar(16)"`
	Terms          string `json:"terms" gorm:"type:text"`
	State          string `json:"state" gorm:"type:varchar(64)"`
	SignatureImage string `json:"signatureImage" gorm:"type:text"`

	UpdatedAt time.Time `json:"updatedAt"`
}
