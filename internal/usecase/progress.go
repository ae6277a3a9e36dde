package usecase

import "github.com/kairos-ev/ordertrack/internal/domain/model"

// ProjectProgress maps the order status onto the pipeline. Stages below the
// current rank are completed, the matching rank is current, the rest pending.
// Total over any valid order; exactly one entry is current.
func ProjectProgress(order *model.Order) []model.StageProgress {
	current := order.Status.Rank()
	stages := model.Pipeline()
	out := make([]model.StageProgress, 0, len(stages))
	for i, stage := range stages {
		state := model.ProgressPending
		switch {
		case i < current:
			state = model.ProgressCompleted
		case i == current:
			state = model.ProgressCurrent
		}
		out = append(out, model.StageProgress{Stage: stage, State: state})
	}
	return out
}
