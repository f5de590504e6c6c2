package intelligence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/heuristic"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/registry"
)

// fakeStore implements OverrideStore in memory.
type fakeStore struct {
	overrides   map[string]*model.MerchantOverride
	suggestions []*model.PendingMerchantSuggestion
}

func newFakeStore() *fakeStore {
	return &fakeStore{overrides: make(map[string]*model.MerchantOverride)}
}

func (f *fakeStore) GetOverride(_ context.Context, domain string) (*model.MerchantOverride, error) {
	o, ok := f.overrides[domain]
	if !ok {
		return nil, common.ErrNotFound
	}
	return o, nil
}

func (f *fakeStore) AddSuggestion(_ context.Context, sg *model.PendingMerchantSuggestion) (*model.PendingMerchantSuggestion, error) {
	f.suggestions = append(f.suggestions, sg)
	return sg, nil
}

// fakeAI implements AIClassifier.
type fakeAI struct {
	suggestion *model.AISuggestion
	err        error
	calls      int
}

func (f *fakeAI) Classify(_ context.Context, _, _ string) (*model.AISuggestion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

func newTestOrchestrator(t *testing.T, store OverrideStore, ai AIClassifier) *Orchestrator {
	t.Helper()
	h, err := heuristic.NewDefaultClassifier()
	require.NoError(t, err)
	return New(store, registry.Default(), h, ai, nil)
}

func TestResolveOverrideShadowsEverything(t *testing.T) {
	store := newFakeStore()
	store.overrides["netflix.com"] = &model.MerchantOverride{
		Domain:     "netflix.com",
		Name:       "Netflix (override)",
		Category:   model.CategoryEntertainment,
		ApprovedBy: "admin",
	}
	ai := &fakeAI{}
	o := newTestOrchestrator(t, store, ai)

	mc, err := o.Resolve(context.Background(), "https://netflix.com/browse", "")
	require.NoError(t, err)

	// The registry knows netflix as streaming; the override wins anyway.
	assert.Equal(t, model.CategoryEntertainment, mc.Category)
	assert.Equal(t, model.SourceOverride, mc.Source)
	assert.Equal(t, model.ConfidenceHigh, mc.Confidence)
	assert.Equal(t, "Netflix (override)", mc.MerchantName)
	assert.Equal(t, 0, ai.calls)
}

func TestResolveRegistryHit(t *testing.T) {
	ai := &fakeAI{}
	o := newTestOrchestrator(t, newFakeStore(), ai)

	mc, err := o.Resolve(context.Background(), "https://www.costco.com/grocery", "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceRegistry, mc.Source)
	assert.Equal(t, model.ConfidenceHigh, mc.Confidence)
	assert.True(t, mc.IsWarehouse)
	assert.True(t, mc.Excluded(model.ExclusionGrocery))
	assert.Equal(t, 0, ai.calls, "registry hit must not reach the AI tier")
}

func TestResolveHeuristicShortCircuitsAI(t *testing.T) {
	ai := &fakeAI{}
	o := newTestOrchestrator(t, newFakeStore(), ai)

	mc, err := o.Resolve(context.Background(), "https://pizza-palace.example.com/menu", "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceHeuristic, mc.Source)
	assert.Equal(t, model.CategoryDining, mc.Category)
	assert.Equal(t, 0, ai.calls)
}

func TestResolveAITierWithEnqueue(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{suggestion: &model.AISuggestion{
		Category:     model.CategoryElectronics,
		Confidence:   model.ConfidenceMedium,
		MerchantName: "Gadget Hut",
		Rationale:    "sells gadgets",
	}}
	o := newTestOrchestrator(t, store, ai)

	mc, err := o.Resolve(context.Background(), "https://gadgethut.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceAI, mc.Source)
	assert.Equal(t, model.CategoryElectronics, mc.Category)
	assert.Equal(t, "Gadget Hut", mc.MerchantName)

	require.Len(t, store.suggestions, 1)
	assert.Equal(t, "gadgethut.example.com", store.suggestions[0].Domain)
	assert.Equal(t, model.SuggestionSourceAI, store.suggestions[0].Source)
}

func TestResolveAICacheHitSkipsEnqueue(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{suggestion: &model.AISuggestion{
		Category:   model.CategoryElectronics,
		Confidence: model.ConfidenceMedium,
		FromCache:  true,
	}}
	o := newTestOrchestrator(t, store, ai)

	_, err := o.Resolve(context.Background(), "https://gadgethut.example.com", "")
	require.NoError(t, err)
	assert.Empty(t, store.suggestions)
}

func TestResolveAIFailurePrefersWeakHeuristic(t *testing.T) {
	ai := &fakeAI{err: common.ErrAIUnavailable}
	o := newTestOrchestrator(t, newFakeStore(), ai)

	// Title-only matches are forced to low confidence, so the heuristic
	// verdict is held back and only used once the AI tier fails.
	mc, err := o.Resolve(context.Background(), "https://pp.example.com", "Pizza Palace - Order Delivery")
	require.NoError(t, err)
	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, model.SourceHeuristic, mc.Source)
	assert.Equal(t, model.CategoryDining, mc.Category)
	assert.Equal(t, model.ConfidenceLow, mc.Confidence)
}

func TestResolveUnknownFallthrough(t *testing.T) {
	ai := &fakeAI{err: common.ErrAIUnavailable}
	o := newTestOrchestrator(t, newFakeStore(), ai)

	mc, err := o.Resolve(context.Background(), "https://zzqv.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceUnknown, mc.Source)
	assert.Equal(t, model.CategoryUnknown, mc.Category)
	assert.Equal(t, model.ConfidenceLow, mc.Confidence)
}

func TestResolveFastSkipsAI(t *testing.T) {
	ai := &fakeAI{suggestion: &model.AISuggestion{Category: model.CategoryDining, Confidence: model.ConfidenceHigh}}
	o := newTestOrchestrator(t, newFakeStore(), ai)

	mc, err := o.ResolveFast(context.Background(), "https://zzqv.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceUnknown, mc.Source)
	assert.Equal(t, 0, ai.calls)
}

func TestResolveUnparseableURLYieldsUnknownWithTrace(t *testing.T) {
	ai := &fakeAI{}
	o := newTestOrchestrator(t, newFakeStore(), ai)

	// Normalization failure is not an error; the resolver still hands
	// back an unknown result with the failure recorded in the trace.
	mc, err := o.Resolve(context.Background(), "javascript:alert(1)", "")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryUnknown, mc.Category)
	assert.Equal(t, model.ConfidenceLow, mc.Confidence)
	assert.Equal(t, model.SourceUnknown, mc.Source)
	require.Len(t, mc.Trace, 1)
	assert.Equal(t, "normalize", mc.Trace[0].Step)
	assert.Equal(t, "fail", mc.Trace[0].Outcome)
	assert.Contains(t, mc.Trace[0].Detail, "javascript:alert(1)")
	assert.Equal(t, 0, ai.calls, "later tiers must not run without a domain")
}

func TestResolveTraceRecordsEveryTier(t *testing.T) {
	ai := &fakeAI{suggestion: &model.AISuggestion{Category: model.CategoryOther, Confidence: model.ConfidenceLow}}
	o := newTestOrchestrator(t, newFakeStore(), ai)

	mc, err := o.Resolve(context.Background(), "https://zzqv.example.com", "")
	require.NoError(t, err)

	var steps []string
	for _, s := range mc.Trace {
		steps = append(steps, s.Step+":"+s.Outcome)
	}
	assert.Equal(t, []string{"override:miss", "registry:miss", "heuristic:miss", "ai:hit", "review:enqueued"}, steps)
}
