package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanSource records which pipeline path produced a plan.
type PlanSource string

const (
	SourceAI         PlanSource = "ai"
	SourceAIRepaired PlanSource = "ai_repaired"
	SourceFallback   PlanSource = "fallback"
)

// Provenance is optional metadata describing how a plan was produced.
// The plan shape is identical whichever path produced it.
type Provenance struct {
	GenerationID   string     `bson:"generationId" json:"generationId"`
	Source         PlanSource `bson:"source" json:"source"`
	FallbackReason string     `bson:"fallbackReason,omitempty" json:"fallbackReason,omitempty"`
	States         []string   `bson:"states" json:"states"`
	ViolationCount int        `bson:"violationCount" json:"violationCount"`
	Model          string     `bson:"model,omitempty" json:"model,omitempty"`
	LatencyMS      int64      `bson:"latencyMs" json:"latencyMs"`
}

// GeneratedPlan is a persisted WeeklyPlan owned by a user.
type GeneratedPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	Plan       WeeklyPlan         `bson:"plan" json:"plan"`
	Targets    DerivedTargets     `bson:"targets" json:"targets"`
	Provenance Provenance         `bson:"provenance" json:"provenance"`
	ExportKey  string             `bson:"exportKey,omitempty" json:"-"` // S3 object key of the JSON export, internal use
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
