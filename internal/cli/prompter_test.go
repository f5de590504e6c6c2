package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/model"
)

type fakeSuggestionStore struct {
	pending  []model.PendingMerchantSuggestion
	listErr  error
	approved []string
	rejected map[string]string
}

func (f *fakeSuggestionStore) ListSuggestions(_ context.Context, status model.SuggestionStatus) ([]model.PendingMerchantSuggestion, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if status != model.SuggestionPending {
		return nil, nil
	}
	return f.pending, nil
}

func (f *fakeSuggestionStore) ApproveSuggestion(_ context.Context, id, _, _ string) (*model.MerchantOverride, error) {
	f.approved = append(f.approved, id)
	return &model.MerchantOverride{}, nil
}

func (f *fakeSuggestionStore) RejectSuggestion(_ context.Context, id, notes string) error {
	if f.rejected == nil {
		f.rejected = make(map[string]string)
	}
	f.rejected[id] = notes
	return nil
}

func pendingSuggestion(id, domain string) model.PendingMerchantSuggestion {
	return model.PendingMerchantSuggestion{
		ID:         id,
		Domain:     domain,
		Category:   model.CategoryStreaming,
		Confidence: model.ConfidenceMedium,
		Source:     model.SuggestionSourceAI,
		Rationale:  "looks like a streaming service",
		Status:     model.SuggestionPending,
	}
}

func runPrompter(t *testing.T, store *fakeSuggestionStore, input string) (*ReviewSummary, string) {
	t.Helper()
	var out bytes.Buffer
	p := NewPrompter(store, "admin", strings.NewReader(input), &out)
	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	return summary, out.String()
}

func TestPrompterEmptyQueue(t *testing.T) {
	summary, out := runPrompter(t, &fakeSuggestionStore{}, "")
	assert.Equal(t, &ReviewSummary{}, summary)
	assert.Contains(t, out, "Review queue is empty")
}

func TestPrompterApprove(t *testing.T) {
	store := &fakeSuggestionStore{
		pending: []model.PendingMerchantSuggestion{pendingSuggestion("sg-1", "streamflix.example.com")},
	}

	summary, out := runPrompter(t, store, "a\n")
	assert.Equal(t, 1, summary.Approved)
	assert.Equal(t, []string{"sg-1"}, store.approved)
	assert.Contains(t, out, "streamflix.example.com")
	assert.Contains(t, out, "Review complete")
}

func TestPrompterRejectWithReason(t *testing.T) {
	store := &fakeSuggestionStore{
		pending: []model.PendingMerchantSuggestion{pendingSuggestion("sg-1", "sketchy.example.com")},
	}

	summary, _ := runPrompter(t, store, "r\nnot a real merchant\n")
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, "not a real merchant", store.rejected["sg-1"])
}

func TestPrompterSkipAndQuit(t *testing.T) {
	store := &fakeSuggestionStore{
		pending: []model.PendingMerchantSuggestion{
			pendingSuggestion("sg-1", "one.example.com"),
			pendingSuggestion("sg-2", "two.example.com"),
			pendingSuggestion("sg-3", "three.example.com"),
		},
	}

	summary, _ := runPrompter(t, store, "s\nq\n")
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Approved)
	assert.Empty(t, store.approved)
}

func TestPrompterRepromptsOnUnknownChoice(t *testing.T) {
	store := &fakeSuggestionStore{
		pending: []model.PendingMerchantSuggestion{pendingSuggestion("sg-1", "one.example.com")},
	}

	summary, out := runPrompter(t, store, "x\na\n")
	assert.Equal(t, 1, summary.Approved)
	assert.Contains(t, out, "Unknown choice")
}

func TestPrompterCancelMidSession(t *testing.T) {
	store := &fakeSuggestionStore{
		pending: []model.PendingMerchantSuggestion{
			pendingSuggestion("sg-1", "one.example.com"),
			pendingSuggestion("sg-2", "two.example.com"),
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := NewPrompter(store, "admin", strings.NewReader("a\na\n"), &out)
	summary, err := p.Run(ctx)
	require.NoError(t, err, "cancellation ends the session without error")
	assert.Equal(t, 0, summary.Approved)
}

func TestPrompterListError(t *testing.T) {
	store := &fakeSuggestionStore{listErr: assert.AnError}
	p := NewPrompter(store, "admin", strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Run(context.Background())
	require.Error(t, err)
}
