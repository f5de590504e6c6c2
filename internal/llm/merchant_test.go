package llm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// memoryCache is an in-memory SuggestionCache for tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*model.AISuggestion
	stored  map[string]time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: make(map[string]*model.AISuggestion),
		stored:  make(map[string]time.Time),
	}
}

func (c *memoryCache) GetAICache(_ context.Context, domain string, ttl time.Duration) (*model.AISuggestion, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sg, ok := c.entries[domain]
	if !ok || time.Since(c.stored[domain]) > ttl {
		return nil, false, nil
	}
	out := *sg
	out.FromCache = true
	out.CachedAt = c.stored[domain]
	return &out, true, nil
}

func (c *memoryCache) PutAICache(_ context.Context, domain string, sg *model.AISuggestion) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[domain] = sg
	c.stored[domain] = time.Now()
	return nil
}

func TestMerchantClassifierParsesReply(t *testing.T) {
	client := NewMockClient(`{"category": "dining", "confidence": "high", "merchant_name": "Tasty Burgers", "rationale": "restaurant menu"}`)
	classifier := NewMerchantClassifier(client, nil, nil)

	sg, err := classifier.Classify(context.Background(), "tastyburgers.com", "https://tastyburgers.com/menu")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDining, sg.Category)
	assert.Equal(t, model.ConfidenceHigh, sg.Confidence)
	assert.Equal(t, "Tasty Burgers", sg.MerchantName)
	assert.False(t, sg.FromCache)
}

func TestMerchantClassifierStripsMarkdownFence(t *testing.T) {
	client := NewMockClient("```json\n{\"category\": \"groceries\", \"confidence\": \"medium\"}\n```")
	classifier := NewMerchantClassifier(client, nil, nil)

	sg, err := classifier.Classify(context.Background(), "freshmart.com", "")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, sg.Category)
	// Name falls back to the domain when the model omits it.
	assert.Equal(t, "Freshmart", sg.MerchantName)
}

func TestMerchantClassifierRejectsUnknownCategory(t *testing.T) {
	client := NewMockClient(`{"category": "cryptocurrency", "confidence": "high"}`)
	classifier := NewMerchantClassifier(client, nil, nil)

	sg, err := classifier.Classify(context.Background(), "coins.example.com", "")
	require.ErrorIs(t, err, common.ErrAIMalformed)

	// The fallback is usable but conservative.
	require.NotNil(t, sg)
	assert.Equal(t, model.CategoryOther, sg.Category)
	assert.Equal(t, model.ConfidenceLow, sg.Confidence)
}

func TestMerchantClassifierCacheHitSkipsProvider(t *testing.T) {
	client := NewMockClient(`{"category": "streaming", "confidence": "high", "merchant_name": "StreamCo"}`)
	cache := newMemoryCache()
	classifier := NewMerchantClassifier(client, cache, nil)

	first, err := classifier.Classify(context.Background(), "streamco.com", "")
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 1, client.Calls())

	second, err := classifier.Classify(context.Background(), "streamco.com", "")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, model.CategoryStreaming, second.Category)
	assert.Equal(t, 1, client.Calls(), "cache hit must not reach the provider")
}

func TestMerchantClassifierProviderDown(t *testing.T) {
	client := NewMockClient()
	client.SetError(&common.RetryableError{Err: assert.AnError, Retryable: true})
	classifier := NewMerchantClassifier(client, nil, nil)

	sg, err := classifier.Classify(context.Background(), "unknown.example.com", "")
	require.ErrorIs(t, err, common.ErrAIUnavailable)
	require.NotNil(t, sg)
	assert.Equal(t, model.CategoryOther, sg.Category)
	assert.Equal(t, "Unknown", sg.MerchantName)
	assert.Equal(t, 1, client.Calls(),
		"a failed classification must not be retried, even on a retryable error")
}

func TestMerchantClassifierCreditsExhausted(t *testing.T) {
	client := NewMockClient()
	client.SetError(&common.RetryableError{Err: common.ErrAICreditsExhausted, Retryable: false})
	classifier := NewMerchantClassifier(client, nil, nil)

	_, err := classifier.Classify(context.Background(), "example.com", "")
	assert.ErrorIs(t, err, common.ErrAICreditsExhausted)
	assert.Equal(t, 1, client.Calls())
}

func TestMerchantPromptListsClosedCategories(t *testing.T) {
	client := NewMockClient(`{"category": "other", "confidence": "low"}`)
	classifier := NewMerchantClassifier(client, nil, nil)

	_, err := classifier.Classify(context.Background(), "example.com", "")
	require.NoError(t, err)

	prompt := client.LastPrompt()
	for _, cat := range model.AllCategories() {
		assert.Contains(t, prompt, string(cat))
	}
}
