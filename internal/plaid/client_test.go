package plaid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		config  Config
		name    string
		errMsg  string
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
		},
		{
			name: "missing client ID",
			config: Config{
				Secret:      "test-secret",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid client ID is required",
		},
		{
			name: "missing secret",
			config: Config{
				ClientID:    "test-client-id",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid secret is required",
		},
		{
			name: "missing access token",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
			},
			wantErr: true,
			errMsg:  "plaid access token is required",
		},
		{
			name: "missing environment",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid environment is required",
		},
		{
			name: "invalid environment",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "development",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "must be sandbox or production",
		},
		{
			name: "valid production environment",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "production",
				AccessToken: "test-token",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigValidateSentinels(t *testing.T) {
	missing := Config{Secret: "s", Environment: "sandbox", AccessToken: "t"}
	assert.ErrorIs(t, missing.Validate(), common.ErrMissingConfig)

	invalid := Config{ClientID: "c", Secret: "s", Environment: "staging", AccessToken: "t"}
	assert.ErrorIs(t, invalid.Validate(), common.ErrInvalidConfig)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "test-client-id",
		Secret:      "test-secret",
		Environment: "sandbox",
		AccessToken: "test-token",
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NotNil(t, client.client)
	assert.Equal(t, "test-token", client.accessToken)
	assert.NotNil(t, client.logger)

	_, err = NewClient(Config{ClientID: "only-id"})
	require.Error(t, err)
}

func TestGetTransactionsRejectsReversedRange(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "test-client-id",
		Secret:      "test-secret",
		Environment: "sandbox",
		AccessToken: "test-token",
	})
	require.NoError(t, err)

	_, err = client.GetTransactions(context.Background(), time.Now(), time.Now().AddDate(0, -1, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date must be before end date")
}

func TestCleanMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic name",
			input:    "Kroger",
			expected: "Kroger",
		},
		{
			name:     "lowercase to title case",
			input:    "trader joes",
			expected: "Trader Joes",
		},
		{
			name:     "remove LLC suffix",
			input:    "Amazon LLC",
			expected: "Amazon",
		},
		{
			name:     "remove Inc suffix",
			input:    "Apple Inc",
			expected: "Apple",
		},
		{
			name:     "remove transaction ID",
			input:    "PAYPAL 123456789",
			expected: "Paypal",
		},
		{
			name:     "preserve short numbers",
			input:    "7-ELEVEN 2345",
			expected: "7-eleven 2345",
		},
		{
			name:     "multiple cleanups",
			input:    "amazon.com llc 987654321",
			expected: "Amazon.com",
		},
		{
			name:     "extra spaces",
			input:    "  Delta   Air   Lines  ",
			expected: "Delta Air Lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanMerchantName(tt.input))
		})
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123456", true},
		{"000000", true},
		{"12a456", false},
		{"ABC123", false},
		{"12.34", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAllDigits(tt.input))
		})
	}
}

func TestMockClient(t *testing.T) {
	mock := NewMockClient()

	startDate := time.Now().AddDate(0, -1, 0)
	endDate := time.Now()

	expectedTxs := []model.Transaction{
		{
			ID:     "tx1",
			Name:   "Test Transaction",
			Amount: 10.50,
		},
	}
	mock.GetTransactionsFn = func(_ context.Context, _, _ time.Time) ([]model.Transaction, error) {
		return expectedTxs, nil
	}

	txs, err := mock.GetTransactions(context.Background(), startDate, endDate)
	require.NoError(t, err)
	assert.Equal(t, expectedTxs, txs)

	assert.Len(t, mock.GetTransactionsCalls, 1)
	assert.Equal(t, startDate, mock.GetTransactionsCalls[0].StartDate)
	assert.Equal(t, endDate, mock.GetTransactionsCalls[0].EndDate)

	expectedAccounts := []string{"acc1", "acc2"}
	mock.GetAccountsFn = func(_ context.Context) ([]string, error) {
		return expectedAccounts, nil
	}

	accounts, err := mock.GetAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedAccounts, accounts)
	assert.Equal(t, 1, mock.GetAccountsCalls)

	mock.Reset()
	assert.Empty(t, mock.GetTransactionsCalls)
	assert.Equal(t, 0, mock.GetAccountsCalls)
}
