package model

// ProgressState classifies a pipeline stage relative to the order status.
type ProgressState string

const (
	ProgressCompleted ProgressState = "completed"
	ProgressCurrent   ProgressState = "current"
	ProgressPending   ProgressState = "pending"
)

// StageProgress pairs a pipeline stage with its progress state for one order.
type StageProgress struct {
	Stage Stage
	State ProgressState
}
