package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"alcyxob/fitness-planner/internal/llm"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

type fakeGenerator struct {
	content string
	err     error
	calls   int
	prompt  string
}

func (g *fakeGenerator) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	g.calls++
	g.prompt = prompt
	if g.err != nil {
		return llm.ContentResponse{}, g.err
	}
	return llm.ContentResponse{Content: g.content, Usage: llm.TokenUsage{Model: "fake-model"}}, nil
}

// slowGenerator never answers before its context ends.
type slowGenerator struct{}

func (slowGenerator) GenerateContent(ctx context.Context, _ string) (llm.ContentResponse, error) {
	<-ctx.Done()
	return llm.ContentResponse{}, ctx.Err()
}

var fixedNow = time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestPipeline(gen llm.TextGenerator, opts Options) *Pipeline {
	opts.Now = func() time.Time { return fixedNow }
	return NewPipeline(gen, knowledge.Default(), nil, opts)
}

func statesOf(res *Result) string {
	return strings.Join(res.Provenance.States, ">")
}

func TestPipelineOfflineUsesFallback(t *testing.T) {
	res, err := newTestPipeline(nil, Options{}).Run(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertComplete(t, res.Plan)
	if res.Provenance.Source != domain.SourceFallback {
		t.Errorf("Source = %s", res.Provenance.Source)
	}
	if got := statesOf(res); got != "START>FALLBACK>ENFORCING>DIVERSIFYING>DONE" {
		t.Errorf("States = %s", got)
	}
	if !strings.Contains(res.Provenance.FallbackReason, ErrNoGenerator.Error()) {
		t.Errorf("FallbackReason = %q", res.Provenance.FallbackReason)
	}
	if !res.Plan.CreatedAt.Equal(fixedNow) || res.Provenance.GenerationID == "" {
		t.Errorf("CreatedAt = %v, GenerationID = %q", res.Plan.CreatedAt, res.Provenance.GenerationID)
	}
}

func TestPipelineFallbackIsDeterministic(t *testing.T) {
	p := newTestPipeline(nil, Options{})
	a, err := p.Run(context.Background(), sampleProfile())
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Run(context.Background(), sampleProfile())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Plan, b.Plan) {
		t.Fatal("fallback plans differ for identical profiles")
	}
}

func TestPipelineAdapterTimeout(t *testing.T) {
	p := newTestPipeline(slowGenerator{}, Options{AdapterTimeout: 20 * time.Millisecond})
	start := time.Now()
	res, err := p.Run(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout was not honoured")
	}
	assertComplete(t, res.Plan)
	if res.Provenance.Source != domain.SourceFallback {
		t.Errorf("Source = %s", res.Provenance.Source)
	}
	if !strings.Contains(res.Provenance.FallbackReason, string(llm.FailureTimeout)) {
		t.Errorf("FallbackReason = %q", res.Provenance.FallbackReason)
	}
}

func TestPipelineAdapterErrors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		kind string
	}{
		{"rate limited", &fakeGenerator{err: &llm.StatusError{Provider: "groq", StatusCode: 429}}, string(llm.FailureRateLimit)},
		{"empty", &fakeGenerator{content: "   "}, string(llm.FailureEmpty)},
		{"service", &fakeGenerator{err: errors.New("boom")}, string(llm.FailureService)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestPipeline(tt.gen, Options{}).Run(context.Background(), sampleProfile())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			assertComplete(t, res.Plan)
			if res.Provenance.Source != domain.SourceFallback || !strings.Contains(res.Provenance.FallbackReason, tt.kind) {
				t.Errorf("provenance = %+v", res.Provenance)
			}
			if tt.gen.calls != 1 {
				t.Errorf("adapter called %d times, want 1", tt.gen.calls)
			}
		})
	}
}

func TestPipelineGarbageOutput(t *testing.T) {
	res, err := newTestPipeline(&fakeGenerator{content: "Sorry, I can't produce a plan today."}, Options{}).Run(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertComplete(t, res.Plan)
	if got := statesOf(res); got != "START>GENERATING>EXTRACTING>FALLBACK>ENFORCING>DIVERSIFYING>DONE" {
		t.Errorf("States = %s", got)
	}
	if !strings.Contains(res.Provenance.FallbackReason, "extraction failed") {
		t.Errorf("FallbackReason = %q", res.Provenance.FallbackReason)
	}
}

func TestPipelineNoDaysFallsBack(t *testing.T) {
	res, err := newTestPipeline(&fakeGenerator{content: `{"message":"here you go"}`}, Options{}).Run(context.Background(), sampleProfile())
	if err != nil {
		t.Fatal(err)
	}
	if res.Provenance.Source != domain.SourceFallback {
		t.Errorf("Source = %s", res.Provenance.Source)
	}
	if got := statesOf(res); got != "START>GENERATING>EXTRACTING>VALIDATING>FALLBACK>ENFORCING>DIVERSIFYING>DONE" {
		t.Errorf("States = %s", got)
	}
}

func TestPipelineValidOutput(t *testing.T) {
	profile := sampleProfile()
	gen := &fakeGenerator{content: "```json\n" + planJSON(t, fallbackPlan(t, profile)) + "\n```"}
	res, err := newTestPipeline(gen, Options{}).Run(context.Background(), profile)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertComplete(t, res.Plan)
	if res.Provenance.Source != domain.SourceAI || res.Provenance.ViolationCount != 0 {
		t.Errorf("provenance = %+v", res.Provenance)
	}
	if res.Provenance.Model != "fake-model" {
		t.Errorf("Model = %q", res.Provenance.Model)
	}
	if got := statesOf(res); got != "START>GENERATING>EXTRACTING>VALIDATING>ENFORCING>DIVERSIFYING>DONE" {
		t.Errorf("States = %s", got)
	}
	if !strings.Contains(gen.prompt, "day1") || !strings.Contains(gen.prompt, "exactly 4") {
		t.Errorf("prompt is missing schedule or meal count:\n%s", gen.prompt)
	}
}

func TestPipelineTruncatedOutputIsRepaired(t *testing.T) {
	profile := sampleProfile()
	raw := planJSON(t, fallbackPlan(t, profile))
	cut := strings.Index(raw, `"day6"`) + 25
	res, err := newTestPipeline(&fakeGenerator{content: raw[:cut]}, Options{}).Run(context.Background(), profile)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertComplete(t, res.Plan)
	if res.Provenance.Source != domain.SourceAIRepaired {
		t.Errorf("Source = %s (%s)", res.Provenance.Source, res.Provenance.FallbackReason)
	}
	if res.Provenance.ViolationCount == 0 {
		t.Error("ViolationCount should record the pre-repair defects")
	}
	if !strings.Contains(statesOf(res), "VALIDATING>REPAIRING>VALIDATING>ENFORCING") {
		t.Errorf("States = %s", statesOf(res))
	}
}

func TestPipelineForbiddenFoodIsReplaced(t *testing.T) {
	profile := sampleProfile()
	profile.DietaryPreferences = []string{"vegetarian"}

	omnivore := fallbackPlan(t, sampleProfile())
	for _, key := range domain.DayKeys {
		d := omnivore.Days[key]
		d.Nutrition.Meals[0].Items = append(d.Nutrition.Meals[0].Items, domain.MealItem{Food: "Grilled salmon", Qty: "150g"})
		omnivore.Days[key] = d
	}
	res, err := newTestPipeline(&fakeGenerator{content: planJSON(t, omnivore)}, Options{}).Run(context.Background(), profile)
	if err != nil {
		t.Fatal(err)
	}
	rules := knowledge.Default().FoodRulesFor(knowledge.DietVegetarian)
	for _, food := range allFoods(res.Plan) {
		if forbidden(food, rules, SubstringMatcher{}) {
			t.Errorf("forbidden food %q in output", food)
		}
	}
	if res.Provenance.Source != domain.SourceAI {
		t.Errorf("Source = %s", res.Provenance.Source)
	}
}

func TestPipelineEquipmentAndRepetition(t *testing.T) {
	profile := sampleProfile()
	profile.Equipment = []string{"dumbbells"}

	plan := pushWeek(t)
	res, err := newTestPipeline(&fakeGenerator{content: planJSON(t, plan)}, Options{}).Run(context.Background(), profile)
	if err != nil {
		t.Fatal(err)
	}
	banned := knowledge.Default().UnavailableEquipment(knowledge.TierHome)
	for _, name := range allExercises(res.Plan) {
		if term, hit := matchAny(SubstringMatcher{}, name, banned); hit {
			t.Errorf("exercise %q needs unavailable %q", name, term)
		}
	}
	for name, n := range dayCounts(res.Plan) {
		if n > DefaultRepetitionCap {
			t.Errorf("%q appears on %d days", name, n)
		}
	}
}

func TestPipelineBandsOnlyProfile(t *testing.T) {
	profile := sampleProfile()
	profile.Equipment = []string{"resistance bands"}

	res, err := newTestPipeline(nil, Options{}).Run(context.Background(), profile)
	if err != nil {
		t.Fatal(err)
	}
	assertComplete(t, res.Plan)
	for _, name := range allExercises(res.Plan) {
		lower := strings.ToLower(name)
		for _, piece := range []string{"dumbbell", "kettlebell", "barbell", "cable", "machine"} {
			if strings.Contains(lower, piece) {
				t.Errorf("exercise %q needs a %s", name, piece)
			}
		}
	}
}

func TestPipelineEmptyKnowledgeBase(t *testing.T) {
	p := NewPipeline(nil, &knowledge.Static{}, nil, Options{})
	_, err := p.Run(context.Background(), sampleProfile())
	if !errors.Is(err, ErrKnowledgeBaseEmpty) {
		t.Fatalf("err = %v, want ErrKnowledgeBaseEmpty", err)
	}
}

func TestPipelineCancelledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := newTestPipeline(slowGenerator{}, Options{}).Run(ctx, sampleProfile())
	if err != nil {
		t.Fatal(err)
	}
	if res.Provenance.Source != domain.SourceFallback {
		t.Errorf("Source = %s", res.Provenance.Source)
	}
}
