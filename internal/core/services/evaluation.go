package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/refscore/refscore/internal/align"
	"github.com/refscore/refscore/internal/core/domain"
	"github.com/refscore/refscore/internal/core/ports/driven"
	"github.com/refscore/refscore/internal/core/ports/driving"
	"github.com/refscore/refscore/internal/loader"
	"github.com/refscore/refscore/internal/logger"
	"github.com/refscore/refscore/internal/metrics"
)

// Ensure EvaluationService implements the interface.
var _ driving.EvaluationService = (*EvaluationService)(nil)

// candidate pairs a loaded source with its per-strategy page maps.
type candidate struct {
	src   *loader.Source
	pages map[int]align.PageText
}

// EvaluationService scores candidate documents against a reference and
// maintains the merged report.
type EvaluationService struct {
	reports driven.ReportStore
	runs    driven.RunStore
	scorer  driven.SemanticScorer
}

// NewEvaluationService creates a new evaluation service.
// The scorer parameter is optional (can be nil); without it the
// semantic metric family is disabled.
func NewEvaluationService(
	reports driven.ReportStore,
	runs driven.RunStore,
	scorer driven.SemanticScorer,
) *EvaluationService {
	return &EvaluationService{
		reports: reports,
		runs:    runs,
		scorer:  scorer,
	}
}

// Evaluate runs one scoring pass over all candidates.
//
// Only an unusable reference or a persistence failure is returned as an
// error. Candidates that fail to load or validate degrade to rows with
// null metrics; reference pages missing from a candidate score against
// empty text.
func (s *EvaluationService) Evaluate(ctx context.Context, req domain.EvaluationRequest) (*domain.EvaluationResult, error) {
	started := time.Now()
	logger.Section("Evaluation")
	logger.Debug("Reference: %s", req.ReferencePath)
	logger.Debug("Candidates: %d, output: %s", len(req.Candidates), req.OutputPath)

	// The reference must be usable; nothing is written otherwise.
	ref, err := loader.Load(req.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("load reference: %w", err)
	}
	if !ref.Valid {
		return nil, fmt.Errorf("%w: reference %s: %s", domain.ErrInvalidDocument, ref.Name, ref.Message)
	}
	if ref.Doc.PageCount() == 0 {
		return nil, fmt.Errorf("%w: reference %s has no usable pages", domain.ErrInvalidDocument, ref.Name)
	}
	logger.Info("Reference %s: %s", ref.Name, ref.Message)

	candidates := s.loadCandidates(req.Candidates, req.CaseInsensitive)

	opts := metrics.Options{
		Rouge:    req.Rouge,
		Bleu:     req.Bleu,
		Semantic: req.Semantic && s.scorer != nil,
	}
	if req.Semantic && s.scorer == nil {
		logger.Warn("Semantic scoring requested but no scorer is available, skipping")
	}
	columns := metrics.Columns(opts)
	logger.Debug("Active metric columns: %v", columns)

	// Lexical pass: reference pages in ascending Order, candidates in
	// input order.
	refPages := align.OrderStrategy{}.PageMap(ref.Doc, req.CaseInsensitive)
	orders := make([]int, 0, len(refPages))
	for ord := range refPages {
		orders = append(orders, ord)
	}
	sort.Ints(orders)

	fresh := make([]domain.ScoreRecord, 0, len(orders)*len(candidates))
	for _, ord := range orders {
		refPage := refPages[ord]
		for _, cand := range candidates {
			rec := domain.ScoreRecord{
				Source:    ref.Name,
				PageTitle: refPage.Title,
				Model:     cand.src.Name,
				Valid:     cand.src.Valid,
			}
			if cand.src.Valid {
				scoreLexical(&rec, refPage.Text, cand.pages[ord].Text, opts)
			}
			fresh = append(fresh, rec)
		}
	}

	existing, err := s.reports.Read(ctx, req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("read existing report: %w", err)
	}
	merged := domain.MergeRecords(existing, fresh)
	rows, err := s.reports.Write(ctx, req.OutputPath, merged, columns)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	logger.Info("Lexical pass complete: %d row(s) in %s", rows, req.OutputPath)

	var notes []domain.MatchNote
	var alignments []domain.ModelAlignment
	if metrics.RequiresAlignment(opts, domain.AlignTitle) {
		notes, alignments, rows, err = s.semanticPass(ctx, req, ref, candidates, columns)
		if err != nil {
			return nil, err
		}
	}

	run := domain.Run{
		ID:            uuid.NewString(),
		StartedAt:     started.UTC(),
		FinishedAt:    time.Now().UTC(),
		ReferencePath: req.ReferencePath,
		ReportPath:    req.OutputPath,
		Models:        candidateNames(candidates),
		Pages:         ref.Doc.PageCount(),
		RowsWritten:   rows,
		Metrics:       columns,
		Threshold:     align.NewTitleStrategy(req.Threshold).Threshold,
		Semantic:      opts.Semantic,
	}
	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, run); err != nil {
			logger.Warn("Failed to record run history: %v", err)
			run.ID = ""
		}
	} else {
		run.ID = ""
	}

	validations := make([]domain.Validation, 0, len(candidates))
	for _, cand := range candidates {
		validations = append(validations, cand.src.Validation())
	}

	return &domain.EvaluationResult{
		Reference:   ref.Validation(),
		Candidates:  validations,
		MatchNotes:  notes,
		Alignments:  alignments,
		ReportPath:  req.OutputPath,
		RowsWritten: rows,
		Columns:     columns,
		Semantic:    opts.Semantic,
		RunID:       run.ID,
		Elapsed:     time.Since(started),
	}, nil
}

// Inspect validates documents without scoring them.
func (s *EvaluationService) Inspect(_ context.Context, paths []string) ([]domain.Validation, error) {
	logger.Section("Validation")
	validations := make([]domain.Validation, 0, len(paths))
	for _, path := range paths {
		src, err := loader.Load(path)
		if err != nil {
			logger.Warn("File %s failed to load: %v", path, err)
			src = loader.Unloadable(path)
		}
		validations = append(validations, src.Validation())
	}
	return validations, nil
}

// loadCandidates loads every candidate, degrading failures to invalid
// sources instead of aborting.
func (s *EvaluationService) loadCandidates(specs []domain.Candidate, lowercase bool) []candidate {
	candidates := make([]candidate, 0, len(specs))
	for _, spec := range specs {
		src, err := loader.Load(spec.Path)
		if err != nil {
			logger.Warn("Candidate %s failed to load: %v", spec.Path, err)
			src = loader.Unloadable(spec.Path)
		}
		if spec.Name != "" {
			src.Rename(spec.Name)
		}
		logger.Info("Candidate %s: %s", src.Name, src.Message)
		candidates = append(candidates, candidate{
			src:   src,
			pages: align.OrderStrategy{}.PageMap(src.Doc, lowercase),
		})
	}
	return candidates
}

// semanticPass aligns pages by fuzzy title matching and fills the
// semantic columns of the already-persisted report in place.
func (s *EvaluationService) semanticPass(
	ctx context.Context,
	req domain.EvaluationRequest,
	ref *loader.Source,
	candidates []candidate,
	columns []string,
) ([]domain.MatchNote, []domain.ModelAlignment, int, error) {
	logger.Section("Semantic Scoring")

	strategy := align.NewTitleStrategy(req.Threshold)
	refPages := strategy.PageMap(ref.Doc)
	refKeys := sortedKeys(refPages)

	// The table may have been altered since the lexical pass; work on
	// what is actually persisted.
	current, err := s.reports.Read(ctx, req.OutputPath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("re-read report: %w", err)
	}
	index := make(map[domain.RecordKey]int, len(current))
	for i, rec := range current {
		index[rec.Key()] = i
	}

	var notes []domain.MatchNote
	var alignments []domain.ModelAlignment

	for _, cand := range candidates {
		if !cand.src.Valid {
			continue
		}
		name := cand.src.Name
		candPages := strategy.PageMap(cand.src.Doc)
		candKeys := sortedKeys(candPages)

		mapping, unmatched, fuzzy := strategy.Align(refKeys, candKeys)
		alignments = append(alignments, domain.ModelAlignment{Model: name, Unmatched: unmatched})
		for _, miss := range unmatched {
			logger.Warn("Model %s: page %q matched no reference title (best %q, score %d)",
				name, miss.Key, miss.BestMatch, miss.Score)
		}
		for i := range fuzzy {
			fuzzy[i].Model = name
			logger.Info("Model %s: matched %q to %q", name, fuzzy[i].Key, fuzzy[i].MatchedTo)
		}
		notes = append(notes, fuzzy...)

		// One candidate page per reference page; ties resolve to the
		// first candidate key in sorted order.
		matched := make(map[string]string, len(mapping))
		for _, candKey := range candKeys {
			refKey, ok := mapping[candKey]
			if !ok {
				continue
			}
			if _, taken := matched[refKey]; !taken {
				matched[refKey] = candKey
			}
		}

		for _, refKey := range refKeys {
			refPage := refPages[refKey]
			i, ok := index[domain.RecordKey{Source: ref.Name, PageTitle: refPage.Title, Model: name}]
			if !ok {
				continue // row altered away between passes
			}
			row := &current[i]

			candKey, ok := matched[refKey]
			isMatched := ok
			row.SemanticMatched = &isMatched
			if !ok {
				continue
			}
			candText := candPages[candKey].Text
			if candText == "" {
				continue
			}

			score, err := s.scorer.Score(ctx, refPage.Text, candText)
			if err != nil {
				logger.Warn("Semantic scoring failed for %s / %q: %v", name, refPage.Title, err)
				if ctx.Err() != nil {
					return nil, nil, 0, ctx.Err()
				}
				continue
			}
			row.Semantic = &score
		}
	}

	rows, err := s.reports.Write(ctx, req.OutputPath, current, columns)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("write semantic columns: %w", err)
	}
	logger.Info("Semantic pass complete: %d row(s) updated in place", rows)
	return notes, alignments, rows, nil
}

// scoreLexical fills the lexical metric cells for one row.
func scoreLexical(rec *domain.ScoreRecord, refText, candText string, opts metrics.Options) {
	lev := metrics.Levenshtein(refText, candText)
	rec.Levenshtein = &lev
	if opts.Rouge {
		r := metrics.RougeL(refText, candText)
		rec.RougeL = &r
	}
	if opts.Bleu {
		b := metrics.Bleu(refText, candText)
		rec.Bleu = &b
	}
}

// candidateNames lists candidate names in input order.
func candidateNames(candidates []candidate) []string {
	names := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		names = append(names, cand.src.Name)
	}
	return names
}

// sortedKeys returns map keys in sorted order for deterministic passes.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
