package pipeline

import (
	"context"

	"github.com/uiuxradar/uiux-radar/internal/ai"
	"github.com/uiuxradar/uiux-radar/internal/job"

	"go.uber.org/zap"
)

// Pipeline sequences score -> normalize -> optional model rescore per record.
// It holds no cross-record state; a single instance can process any number of
// batches.
type Pipeline struct {
	tables     *ScoreTables
	normalizer *Normalizer
	scorer     ai.Scorer
	scorerMax  int
	logger     *zap.Logger
}

// New returns a Pipeline with the production tables and no rescoring.
func New(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		tables:     DefaultScoreTables(),
		normalizer: NewNormalizer(),
		logger:     logger,
	}
}

// WithTables substitutes the scoring tables, mainly for tests.
func (p *Pipeline) WithTables(tables *ScoreTables) *Pipeline {
	p.tables = tables
	return p
}

// WithNormalizer substitutes the normalizer, mainly for tests.
func (p *Pipeline) WithNormalizer(n *Normalizer) *Pipeline {
	p.normalizer = n
	return p
}

// WithScorer enables model rescoring for at most maxRecords records per run.
// maxRecords <= 0 means no limit.
func (p *Pipeline) WithScorer(scorer ai.Scorer, maxRecords int) *Pipeline {
	p.scorer = scorer
	p.scorerMax = maxRecords
	return p
}

// Run processes the batch and returns it sorted by descending score, ties in
// input order. A failed rescore never drops a record.
func (p *Pipeline) Run(ctx context.Context, raws []*job.Raw) *job.Jobs {
	jobs := &job.Jobs{Items: make([]*job.Norm, 0, len(raws))}

	for i, raw := range raws {
		ruleScore := p.tables.Score(raw)
		norm := p.normalizer.Normalize(raw, ruleScore)

		if p.scorer != nil && (p.scorerMax <= 0 || i < p.scorerMax) {
			p.rescore(ctx, raw, norm)
		}

		jobs.Items = append(jobs.Items, norm)
	}

	jobs.SortByScore()
	return jobs
}

// rescore asks the external model for a score bundle and overrides the rule
// score with its total. Any failure degrades to the neutral bundle.
func (p *Pipeline) rescore(ctx context.Context, raw *job.Raw, norm *job.Norm) {
	bundle, err := p.scorer.ScoreJob(ctx, raw)
	if err != nil {
		p.logger.Warn("model rescoring failed",
			zap.String("company", raw.CompanyName),
			zap.String("job_title", raw.JobTitle),
			zap.Error(err),
		)
		bundle = ai.NeutralBundle("rescoring failed: " + err.Error())
	}

	norm.LLMFields = &job.LLMFields{
		LLMScore:           bundle.TotalScore,
		LLMDispatchScore:   bundle.DispatchScore,
		LLMUrgencyScore:    bundle.UrgencyScore,
		LLMSkillMatchScore: bundle.SkillMatchScore,
		LLMReason:          bundle.Reason,
		LLMTags:            bundle.Tags,
	}
	norm.Score = bundle.TotalScore

	p.logger.Debug("model rescoring applied",
		zap.String("company", raw.CompanyName),
		zap.Int("total_score", bundle.TotalScore),
	)
}
