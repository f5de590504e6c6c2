package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction is a single historical charge from any import source.
type Transaction struct {
	Date         time.Time
	ID           string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name
	AccountID    string
	CardID       string // Wallet card the charge was made on, if known
	Hash         string
	Category     Category // Resolved category, CategoryUnknown if unresolved
	Amount       float64
}

// GenerateHash creates a stable hash for duplicate detection across imports.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.MerchantName,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
