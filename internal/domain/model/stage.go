package model

import (
	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
)

// Stage describes a single step of the order delivery pipeline.
type Stage string

const (
	StagePlaced     Stage = "placed"
	StageProcessing Stage = "processing"
	StageShipping   Stage = "shipping"
	StageCustoms    Stage = "customs"
	StageArrival    Stage = "arrival"
	StageReady      Stage = "ready"
	StageDelivered  Stage = "delivered"
)

// pipeline is the canonical stage order. Slice index is the stage rank.
var pipeline = []Stage{
	StagePlaced,
	StageProcessing,
	StageShipping,
	StageCustoms,
	StageArrival,
	StageReady,
	StageDelivered,
}

var stageLabels = map[Stage]string{
	StagePlaced:     "Order Placed",
	StageProcessing: "Processing",
	StageShipping:   "Shipping",
	StageCustoms:    "Customs",
	StageArrival:    "Arrived",
	StageReady:      "Ready for Pickup",
	StageDelivered:  "Delivered",
}

// Pipeline returns the full ordered stage vocabulary.
func Pipeline() []Stage {
	out := make([]Stage, len(pipeline))
	copy(out, pipeline)
	return out
}

// ParseStage converts a raw string into a known Stage.
func ParseStage(raw string) (Stage, error) {
	stage := Stage(raw)
	if !stage.Valid() {
		return "", domainErrors.ErrInvalidStage
	}
	return stage, nil
}

// Valid reports whether the stage belongs to the closed vocabulary.
func (s Stage) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the stage position in the pipeline, or -1 for unknown stages.
func (s Stage) Rank() int {
	for i, stage := range pipeline {
		if stage == s {
			return i
		}
	}
	return -1
}

// Label returns the human-facing stage name.
func (s Stage) Label() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return string(s)
}

// Terminal reports whether the stage ends the pipeline.
func (s Stage) Terminal() bool {
	return s == StageDelivered
}

// CustomerMilestone reports whether entering the stage notifies the owner.
func (s Stage) CustomerMilestone() bool {
	return s == StageShipping || s == StageReady
}
