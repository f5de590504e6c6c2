package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/model"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2026011501
<NAME>KROGER #0412
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2026012001
<NAME>DELTA AIR LINES
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260125120000[0:GMT]
<TRNAMT>-62.40
<FITID>2026012501
<NAME>POS PURCHASE COSTCO WHSE #117
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20260101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2026011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260115120000[0:GMT]
<TRNAMT>-15.49
<FITID>CC2026011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser()
			transactions, err := parser.ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, transactions, tt.expectedCount)
			}
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser()

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	tx1 := transactions[0]
	assert.Equal(t, "2026011501", tx1.ID)
	assert.Equal(t, "KROGER #0412", tx1.Name)
	assert.Equal(t, "KROGER #0412", tx1.MerchantName)
	assert.Equal(t, 25.50, tx1.Amount)
	assert.Equal(t, "1234567890", tx1.AccountID)
	assert.Equal(t, model.CategoryUnknown, tx1.Category)
	assert.NotEmpty(t, tx1.Hash)
	assert.Equal(t, 2026, tx1.Date.Year())
	assert.Equal(t, time.January, tx1.Date.Month())
	assert.Equal(t, 15, tx1.Date.Day())

	tx2 := transactions[1]
	assert.Equal(t, "DELTA AIR LINES", tx2.Name)
	assert.Equal(t, 125.00, tx2.Amount)

	// POS prefix is stripped on the merchant name but the raw name is kept.
	tx3 := transactions[2]
	assert.Equal(t, "POS PURCHASE COSTCO WHSE #117", tx3.Name)
	assert.Equal(t, "COSTCO WHSE #117", tx3.MerchantName)
	assert.Equal(t, 62.40, tx3.Amount)
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser()

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	tx1 := transactions[0]
	assert.Equal(t, "CC2026011001", tx1.ID)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", tx1.Name)
	assert.Equal(t, 45.99, tx1.Amount)
	assert.Equal(t, "4111111111111111", tx1.AccountID)

	tx2 := transactions[1]
	assert.Equal(t, "NETFLIX.COM", tx2.Name)
	assert.Equal(t, 15.49, tx2.Amount)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "remove POS prefix",
			input:    "POS PURCHASE TRADER JOES",
			expected: "TRADER JOES",
		},
		{
			name:     "remove DEBIT CARD prefix",
			input:    "DEBIT CARD PURCHASE GRUBHUB",
			expected: "GRUBHUB",
		},
		{
			name:     "keep clean name",
			input:    "NETFLIX.COM",
			expected: "NETFLIX.COM",
		},
		{
			name:     "trim whitespace",
			input:    "  AMAZON.COM  ",
			expected: "AMAZON.COM",
		},
		{
			name:     "strip leading date stamp",
			input:    "CHECK CARD 01/15 COSTCO WHSE",
			expected: "COSTCO WHSE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.input),
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestDuplicateHashesMatch(t *testing.T) {
	tx1 := model.Transaction{
		ID:           "TX001",
		Date:         time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Name:         "KROGER",
		MerchantName: "Kroger",
		Amount:       25.50,
		AccountID:    "123456",
	}
	tx1.Hash = tx1.GenerateHash()

	// Same posting re-exported under a different FITID still collides.
	tx2 := tx1
	tx2.ID = "TX002"
	tx2.Hash = tx2.GenerateHash()
	assert.Equal(t, tx1.Hash, tx2.Hash)

	tx3 := tx1
	tx3.Amount = 30.00
	tx3.Hash = tx3.GenerateHash()
	assert.NotEqual(t, tx1.Hash, tx3.Hash)

	tx4 := tx1
	tx4.Date = tx4.Date.AddDate(0, 0, 1)
	tx4.Hash = tx4.GenerateHash()
	assert.NotEqual(t, tx1.Hash, tx4.Hash)
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Contains(t, accounts, "1234567890")

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Contains(t, accounts, "4111111111111111")
}
