package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/swipewise/swipewise/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidStatus     = errors.New("invalid suggestion status")
	ErrInvalidTransition = errors.New("invalid suggestion state transition")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateCategory(c model.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	return nil
}

func validateOverride(o *model.MerchantOverride) error {
	if o == nil {
		return fmt.Errorf("%w: override", ErrNilParameter)
	}
	if err := validateString(o.Domain, "domain"); err != nil {
		return err
	}
	if err := validateString(o.ApprovedBy, "approvedBy"); err != nil {
		return err
	}
	return validateCategory(o.Category)
}

func validateSuggestion(s *model.PendingMerchantSuggestion) error {
	if s == nil {
		return fmt.Errorf("%w: suggestion", ErrNilParameter)
	}
	if err := validateString(s.Domain, "domain"); err != nil {
		return err
	}
	if err := validateCategory(s.Category); err != nil {
		return err
	}
	switch s.Source {
	case model.SuggestionSourceAI, model.SuggestionSourceHeuristic, model.SuggestionSourceUserReport:
	default:
		return fmt.Errorf("invalid suggestion source: %q", s.Source)
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return errors.New("transaction missing ID")
	}
	if txn.Date.IsZero() {
		return errors.New("transaction missing date")
	}
	if txn.Name == "" {
		return errors.New("transaction missing name")
	}
	return nil
}
