// Package engine evaluates every candidate record against a query, drops
// candidates that fail a supplied field, and ranks the rest by a weighted
// aggregate of their field scores.
package engine

import (
	"context"
	"encoding/json"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/idlocator/internal/debug"
	lcierrors "github.com/standardbeagle/idlocator/internal/errors"
	"github.com/standardbeagle/idlocator/internal/semantic"
	"github.com/standardbeagle/idlocator/internal/store"
	"github.com/standardbeagle/idlocator/internal/types"
)

// scoredFields are evaluated in this order for every candidate
var scoredFields = []types.FieldName{
	types.FieldFirstName,
	types.FieldLastName,
	types.FieldStreet,
	types.FieldCity,
	types.FieldHouseNumber,
}

// below this many candidates a parallel search runs serially
const minParallelCandidates = 256

// cancellation is checked once per this many candidates
const cancelCheckInterval = 64

// Source supplies the record snapshot a search runs against.
// Every search pins exactly one snapshot for its whole duration.
type Source interface {
	Snapshot() *store.Store
}

type staticSource struct {
	s *store.Store
}

func (ss staticSource) Snapshot() *store.Store {
	return ss.s
}

// StaticSource wraps a fixed store
func StaticSource(s *store.Store) Source {
	return staticSource{s: s}
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Weights Weights
	Scorer  *semantic.FieldScorer

	// MaxResults truncates the ranked list; 0 keeps everything
	MaxResults int

	// Parallelism is the number of evaluation goroutines; 0 or 1 is serial,
	// negative uses runtime.NumCPU
	Parallelism int
}

// Engine runs searches. It keeps no per-search state and is safe for
// concurrent use.
type Engine struct {
	source      Source
	weights     Weights
	scorer      *semantic.FieldScorer
	maxResults  int
	parallelism int
}

// New creates an engine over a record source
func New(source Source, opts Options) *Engine {
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights
	}
	if opts.Scorer == nil {
		opts.Scorer = semantic.DefaultFieldScorer()
	}
	if opts.Parallelism < 0 {
		opts.Parallelism = runtime.NumCPU()
	}
	if opts.MaxResults < 0 {
		opts.MaxResults = 0
	}

	return &Engine{
		source:      source,
		weights:     opts.Weights,
		scorer:      opts.Scorer,
		maxResults:  opts.MaxResults,
		parallelism: opts.Parallelism,
	}
}

// Lexicon returns the equivalence tables the engine scores with
func (e *Engine) Lexicon() *semantic.Lexicon {
	return e.scorer.Lexicon()
}

// NewForStore creates an engine with default options over a fixed store
func NewForStore(s *store.Store) *Engine {
	return New(StaticSource(s), Options{})
}

// Search ranks the records of the current snapshot against q.
//
// An id query is an exact lookup: one result scoring 100, or none. Otherwise
// every candidate is scored on each supplied field; a field scoring 0
// eliminates the candidate. Results are sorted by aggregate score, highest
// first, keeping store order among ties. A query with no fields returns every
// candidate with score 0.
func (e *Engine) Search(ctx context.Context, q types.QuerySpec) ([]types.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q = q.Normalized()
	snapshot := e.source.Snapshot()
	if snapshot == nil {
		return []types.MatchResult{}, nil
	}

	if q.ID != "" {
		return lookupByID(snapshot, q.ID), nil
	}

	candidates := snapshot.All()
	if q.City != "" {
		// pre-filter only: an empty filter falls back to the full set and the
		// city field score still decides elimination
		if inCity := snapshot.FilterByCity(q.City); len(inCity) > 0 {
			candidates = inCity
		}
	}

	var (
		results []types.MatchResult
		err     error
	)
	if e.parallelism > 1 && len(candidates) >= minParallelCandidates {
		results, err = e.evaluateParallel(ctx, candidates, q)
	} else {
		results, err = e.evaluateSerial(ctx, candidates, q)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if e.maxResults > 0 && len(results) > e.maxResults {
		results = results[:e.maxResults]
	}

	debug.LogSearch("%d candidates, %d results\n", len(candidates), len(results))
	return results, nil
}

// SearchRequired is Search for callers that must not run an empty query.
// A query without any field returns a SearchError wrapping ErrEmptyQuery.
func (e *Engine) SearchRequired(ctx context.Context, q types.QuerySpec) ([]types.MatchResult, error) {
	if !q.HasAnyField() {
		return nil, lcierrors.NewSearchError(describeQuery(q), lcierrors.ErrEmptyQuery)
	}
	results, err := e.Search(ctx, q)
	if err != nil {
		return nil, lcierrors.NewSearchError(describeQuery(q), err)
	}
	return results, nil
}

// Evaluate scores one record against q. It returns false when a supplied
// field scores 0. q is expected to be trimmed.
func (e *Engine) Evaluate(p types.PersonRecord, q types.QuerySpec) (types.MatchResult, bool) {
	fieldScores := make(map[types.FieldName]types.FieldScore)
	var totalWeight, weightedSum float64

	for _, field := range scoredFields {
		query := q.Field(field)
		if query == "" {
			continue
		}

		var m semantic.FieldMatch
		if field == types.FieldHouseNumber {
			m = e.scorer.ScoreHouseNumber(query, p.HouseNumber)
		} else {
			m = e.scorer.ScoreText(query, p.Field(field), q.UsePhonetic)
		}

		fieldScores[field] = types.FieldScore{
			Field: field,
			Score: types.RoundScore(m.Score * 100),
			Tier:  string(m.Tier),
		}
		if !m.Matched() {
			return types.MatchResult{}, false
		}

		w := e.weights.For(field)
		totalWeight += w
		weightedSum += m.Score * w
	}

	score := 0.0
	if totalWeight > 0 {
		score = types.RoundScore(weightedSum / totalWeight * 100)
	}

	return types.MatchResult{
		Person:      p,
		Score:       score,
		FieldScores: fieldScores,
	}, true
}

func (e *Engine) evaluateSerial(ctx context.Context, candidates []types.PersonRecord, q types.QuerySpec) ([]types.MatchResult, error) {
	results := make([]types.MatchResult, 0)
	for i, p := range candidates {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if r, ok := e.Evaluate(p, q); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// evaluateParallel splits candidates into contiguous chunks. Each worker
// writes into its own slots so the merged order matches the serial path.
func (e *Engine) evaluateParallel(ctx context.Context, candidates []types.PersonRecord, q types.QuerySpec) ([]types.MatchResult, error) {
	slots := make([]types.MatchResult, len(candidates))
	matched := make([]bool, len(candidates))

	chunk := (len(candidates) + e.parallelism - 1) / e.parallelism

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(candidates); start += chunk {
		end := start + chunk
		if end > len(candidates) {
			end = len(candidates)
		}
		lo, hi := start, end
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				slots[i], matched[i] = e.Evaluate(candidates[i], q)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.MatchResult, 0)
	for i, ok := range matched {
		if ok {
			results = append(results, slots[i])
		}
	}
	return results, nil
}

func lookupByID(s *store.Store, id string) []types.MatchResult {
	p, ok := s.LookupByID(id)
	if !ok {
		return []types.MatchResult{}
	}
	return []types.MatchResult{{
		Person: p,
		Score:  100.0,
		FieldScores: map[types.FieldName]types.FieldScore{
			types.FieldID: {Field: types.FieldID, Score: 100.0, Tier: string(semantic.TierExact)},
		},
	}}
}

func describeQuery(q types.QuerySpec) string {
	data, err := json.Marshal(q.Normalized())
	if err != nil {
		return "{}"
	}
	return string(data)
}
