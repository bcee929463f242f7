package ai

import (
	"context"

	"github.com/uiuxradar/uiux-radar/internal/job"
)

// NeutralScore is the midpoint sub-score used when a model response cannot be
// obtained or parsed.
const NeutralScore = 50

// ScoreBundle is the model-derived score set for one posting. All sub-scores
// are in [0, 100].
type ScoreBundle struct {
	DispatchScore   int
	UrgencyScore    int
	SkillMatchScore int
	TotalScore      int
	Reason          string
	Tags            []string
	Raw             string
}

// NeutralBundle returns the fallback bundle carrying the given diagnostic
// reason. The pipeline uses it whenever rescoring fails so normalization
// always completes.
func NeutralBundle(reason string) *ScoreBundle {
	return &ScoreBundle{
		DispatchScore:   NeutralScore,
		UrgencyScore:    NeutralScore,
		SkillMatchScore: NeutralScore,
		TotalScore:      NeutralScore,
		Reason:          reason,
		Tags:            []string{},
	}
}

// Scorer evaluates a raw posting with an external text-understanding model.
type Scorer interface {
	ScoreJob(ctx context.Context, raw *job.Raw) (*ScoreBundle, error)
}
