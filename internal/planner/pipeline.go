package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"alcyxob/fitness-planner/internal/llm"
	"alcyxob/fitness-planner/internal/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is a step of the generation pipeline.
type State string

const (
	StateStart        State = "START"
	StateGenerating   State = "GENERATING"
	StateExtracting   State = "EXTRACTING"
	StateValidating   State = "VALIDATING"
	StateRepairing    State = "REPAIRING"
	StateEnforcing    State = "ENFORCING"
	StateDiversifying State = "DIVERSIFYING"
	StateFallback     State = "FALLBACK"
	StateDone         State = "DONE"
)

// Outcome is the verdict on a validated document.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNeedsRepair
	OutcomeUnrecoverable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNeedsRepair:
		return "needs_repair"
	}
	return "unrecoverable"
}

// Assess decides whether a document is usable, repairable or should be abandoned. A document
// without any recognizable day slot is not worth repairing.
func Assess(p PartialPlan, r Report) Outcome {
	if r.OK() {
		return OutcomeOK
	}
	if !p.HasDays || len(p.Days) == 0 {
		return OutcomeUnrecoverable
	}
	return OutcomeNeedsRepair
}

const (
	DefaultAdapterTimeout  = 45 * time.Second
	DefaultMaxRepairPasses = 2
)

type Options struct {
	AdapterTimeout  time.Duration
	RepetitionCap   int
	MacroPolicy     MacroPolicy
	MacroTolerance  float64
	MaxRepairPasses int
	Model           string           // recorded in provenance when the provider does not report one
	Now             func() time.Time // defaults to time.Now
}

// Result is a finished plan together with what went into it.
type Result struct {
	Plan       domain.WeeklyPlan
	Profile    domain.Profile
	Targets    domain.DerivedTargets
	Schedule   []domain.DaySlot
	Provenance domain.Provenance
}

// Pipeline turns a profile into a complete, constraint-compliant weekly plan. It is stateless
// between calls and safe for concurrent use.
type Pipeline struct {
	generator llm.TextGenerator
	kb        knowledge.Base
	fallback  *FallbackGenerator
	enforcer  *Enforcer
	opts      Options
	log       *logger.Logger
}

// NewPipeline wires the stages. A nil generator means every plan comes from the fallback path.
func NewPipeline(gen llm.TextGenerator, kb knowledge.Base, log *logger.Logger, opts Options) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	if opts.AdapterTimeout <= 0 {
		opts.AdapterTimeout = DefaultAdapterTimeout
	}
	if opts.RepetitionCap <= 0 {
		opts.RepetitionCap = DefaultRepetitionCap
	}
	if opts.MaxRepairPasses <= 0 {
		opts.MaxRepairPasses = DefaultMaxRepairPasses
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		generator: gen,
		kb:        kb,
		fallback:  NewFallbackGenerator(kb),
		enforcer:  NewEnforcer(kb, SubstringMatcher{}, opts.MacroPolicy, opts.MacroTolerance),
		opts:      opts,
		log:       log.With("component", "Pipeline"),
	}
}

// run carries the per-request state through the stages.
type run struct {
	*Pipeline
	ctx      context.Context
	profile  domain.Profile
	targets  domain.DerivedTargets
	schedule []domain.DaySlot
	prov     domain.Provenance
	log      *logger.Logger
}

func (r *run) enter(s State) {
	r.prov.States = append(r.prov.States, string(s))
	r.log.Debug("pipeline state", "state", s)
}

// Run executes the pipeline once. The only error it returns is ErrKnowledgeBaseEmpty from the
// fallback path; every generation, extraction or validation failure is recovered.
func (p *Pipeline) Run(ctx context.Context, profile domain.Profile) (*Result, error) {
	start := p.opts.Now()
	norm := NormalizeProfile(profile)
	id := uuid.NewString()
	r := &run{
		Pipeline: p,
		ctx:      ctx,
		profile:  norm,
		targets:  ComputeTargets(norm),
		schedule: BuildSchedule(norm),
		prov:     domain.Provenance{GenerationID: id, Model: p.opts.Model},
		log:      p.log.With("generation_id", id, "user_id", profile.UserID),
	}
	r.enter(StateStart)

	plan, source, err := r.generate()
	if err != nil {
		r.prov.FallbackReason = err.Error()
		r.log.Warn("falling back to deterministic plan", "error", err)
		r.enter(StateFallback)
		plan, err = p.fallback.Generate(r.profile, r.targets)
		if err != nil {
			return nil, err
		}
		source = domain.SourceFallback
	}

	r.enter(StateEnforcing)
	plan = p.enforcer.Enforce(plan, r.profile, r.targets)
	r.enter(StateDiversifying)
	plan = Diversify(plan, p.opts.RepetitionCap, p.enforcer.Pool(r.profile))
	r.enter(StateDone)

	plan.CreatedAt = p.opts.Now().UTC()
	plan.EstimatedWeeksToGoal = r.targets.EstimatedWeeksToGoal
	r.prov.Source = source
	r.prov.LatencyMS = p.opts.Now().Sub(start).Milliseconds()
	r.log.Info("plan generated", "source", source, "violations", r.prov.ViolationCount, "latency_ms", r.prov.LatencyMS)

	return &Result{
		Plan:       plan,
		Profile:    r.profile,
		Targets:    r.targets,
		Schedule:   r.schedule,
		Provenance: r.prov,
	}, nil
}

// generate is the AI path. Any error it returns sends the run to the fallback state.
func (r *run) generate() (domain.WeeklyPlan, domain.PlanSource, error) {
	if r.generator == nil {
		return domain.WeeklyPlan{}, "", &AdapterFailure{Kind: llm.FailureUnavailable, Err: ErrNoGenerator}
	}
	r.enter(StateGenerating)
	prompt, err := BuildPrompt(r.profile, r.targets, r.schedule, r.opts.RepetitionCap)
	if err != nil {
		return domain.WeeklyPlan{}, "", &AdapterFailure{Kind: llm.FailureService, Err: fmt.Errorf("render prompt: %w", err)}
	}
	resp, err := r.call(prompt)
	if err != nil {
		return domain.WeeklyPlan{}, "", &AdapterFailure{Kind: llm.Classify(err), Err: err}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return domain.WeeklyPlan{}, "", &AdapterFailure{Kind: llm.FailureEmpty, Err: llm.ErrEmptyResponse}
	}
	if resp.Usage.Model != "" {
		r.prov.Model = resp.Usage.Model
	}

	r.enter(StateExtracting)
	doc, err := Extract(resp.Content)
	if err != nil {
		return domain.WeeklyPlan{}, "", &ExtractionFailure{Err: err}
	}
	partial := DecodePlan(doc)

	source := domain.SourceAI
	for pass := 0; ; pass++ {
		r.enter(StateValidating)
		report := Validate(partial)
		if pass == 0 {
			r.prov.ViolationCount = len(report.Violations)
		}
		switch Assess(partial, report) {
		case OutcomeOK:
			return partial.ToWeeklyPlan(), source, nil
		case OutcomeUnrecoverable:
			return domain.WeeklyPlan{}, "", &ValidationFailure{Report: report}
		}
		if pass >= r.opts.MaxRepairPasses {
			return domain.WeeklyPlan{}, "", &ValidationFailure{Report: report}
		}
		r.log.Debug("repairing plan", "pass", pass+1, "violations", len(report.Violations))
		r.enter(StateRepairing)
		partial = Repair(partial, report, RepairInput{
			Profile:  r.profile,
			Targets:  r.targets,
			Schedule: r.schedule,
			KB:       r.kb,
		})
		source = domain.SourceAIRepaired
	}
}

// call runs the adapter under the configured timeout. A generator that ignores its context is
// abandoned when the deadline passes.
func (r *run) call(prompt string) (llm.ContentResponse, error) {
	ctx, cancel := context.WithTimeout(r.ctx, r.opts.AdapterTimeout)
	defer cancel()

	type answer struct {
		resp llm.ContentResponse
		err  error
	}
	done := make(chan answer, 1)
	go func() {
		resp, err := r.generator.GenerateContent(ctx, prompt)
		done <- answer{resp, err}
	}()

	select {
	case a := <-done:
		return a.resp, a.err
	case <-ctx.Done():
		return llm.ContentResponse{}, ctx.Err()
	}
}
