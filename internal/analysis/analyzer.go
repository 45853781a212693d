// Package analysis scores relationships and discovers warm paths and dormant
// threads in a parsed export.
//
// An Analyzer is immutable once built. Every query recomputes its result from
// the read-only identity index, so repeated calls return identical output and
// queries may run concurrently.
package analysis

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thomaskoefod/linkedintel/internal/identity"
	"github.com/thomaskoefod/linkedintel/internal/logging"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

const (
	DefaultSelf              = "Me"
	DefaultWorkers           = 4
	DefaultResurrectionLimit = 20
)

type Analyzer struct {
	ds       *models.Dataset
	idx      *identity.Index
	self     string
	resolver identity.Resolver
	now      time.Time
	halfLife float64
	workers  int

	resurrectionLimit int
	log               *slog.Logger
}

type Option func(*Analyzer)

// WithSelf sets the exporting user's display name in messages.csv.
func WithSelf(name string) Option {
	return func(a *Analyzer) { a.self = name }
}

func WithResolver(r identity.Resolver) Option {
	return func(a *Analyzer) { a.resolver = r }
}

// WithNow fixes the reference time all ages are measured from.
func WithNow(now time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func WithHalfLife(days float64) Option {
	return func(a *Analyzer) {
		if days > 0 {
			a.halfLife = days
		}
	}
}

// WithWorkers bounds how many connections are scored at once.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithResurrectionLimit caps Resurrections; 0 means no cap.
func WithResurrectionLimit(n int) Option {
	return func(a *Analyzer) { a.resurrectionLimit = n }
}

func WithLogger(log *slog.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

func New(ds *models.Dataset, opts ...Option) *Analyzer {
	if ds == nil {
		ds = &models.Dataset{}
	}
	a := &Analyzer{
		ds:                ds,
		self:              DefaultSelf,
		resolver:          identity.CaseFold{},
		now:               time.Now(),
		halfLife:          DefaultHalfLifeDays,
		workers:           DefaultWorkers,
		resurrectionLimit: DefaultResurrectionLimit,
		log:               logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.idx = identity.Build(ds, a.self, a.resolver)
	return a
}

func (a *Analyzer) Dataset() *models.Dataset { return a.ds }
func (a *Analyzer) Now() time.Time           { return a.now }

// Scores computes one RelationshipScore per connection, in connection order.
func (a *Analyzer) Scores(ctx context.Context) ([]models.RelationshipScore, error) {
	out := make([]models.RelationshipScore, len(a.ds.Connections))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range a.ds.Connections {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = a.score(a.ds.Connections[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.log.Debug("scored connections", "count", len(out))
	return out, nil
}

// Lookup scores the connection whose name matches name.
func (a *Analyzer) Lookup(name string) (models.RelationshipScore, bool) {
	key := a.idx.Key(name)
	if key == "" {
		return models.RelationshipScore{}, false
	}
	for _, c := range a.ds.Connections {
		if a.idx.Key(c.FullName()) == key {
			return a.score(c), true
		}
	}
	return models.RelationshipScore{}, false
}

// Warmest ranks by strength. n <= 0 returns every connection.
func (a *Analyzer) Warmest(ctx context.Context, n int) ([]models.RelationshipScore, error) {
	scores, err := a.Scores(ctx)
	if err != nil {
		return nil, err
	}
	return warmest(scores, n), nil
}

// GoingCold returns fading but salvageable relationships, most valuable first.
func (a *Analyzer) GoingCold(ctx context.Context, n int) ([]models.RelationshipScore, error) {
	scores, err := a.Scores(ctx)
	if err != nil {
		return nil, err
	}
	return goingCold(scores, n), nil
}

// Advocates ranks by vouch score.
func (a *Analyzer) Advocates(ctx context.Context, n int) ([]models.RelationshipScore, error) {
	scores, err := a.Scores(ctx)
	if err != nil {
		return nil, err
	}
	return advocates(scores, n), nil
}

// Reciprocity splits the ledger into people who owe the user, largest debt
// first, and people the user owes, largest debt first.
func (a *Analyzer) Reciprocity(ctx context.Context, n int) (theyOwe, youOwe []models.RelationshipScore, err error) {
	scores, err := a.Scores(ctx)
	if err != nil {
		return nil, nil, err
	}
	theyOwe, youOwe = ledger(scores, n)
	return theyOwe, youOwe, nil
}

// Going-cold band on strength.
const (
	goingColdMin = 30.0
	goingColdMax = 70.0

	strongAdvocate = 80.0
)

func warmest(scores []models.RelationshipScore, n int) []models.RelationshipScore {
	out := slices.Clone(scores)
	slices.SortStableFunc(out, func(x, y models.RelationshipScore) int {
		return cmp.Compare(y.Strength, x.Strength)
	})
	return top(out, n)
}

func goingCold(scores []models.RelationshipScore, n int) []models.RelationshipScore {
	var out []models.RelationshipScore
	for _, s := range scores {
		if s.Strength >= goingColdMin && s.Strength <= goingColdMax {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, byVouchDesc)
	return top(out, n)
}

func advocates(scores []models.RelationshipScore, n int) []models.RelationshipScore {
	out := slices.Clone(scores)
	slices.SortStableFunc(out, byVouchDesc)
	return top(out, n)
}

func ledger(scores []models.RelationshipScore, n int) (theyOwe, youOwe []models.RelationshipScore) {
	for _, s := range scores {
		switch {
		case s.ReciprocityBalance > 0:
			theyOwe = append(theyOwe, s)
		case s.ReciprocityBalance < 0:
			youOwe = append(youOwe, s)
		}
	}
	slices.SortStableFunc(theyOwe, func(x, y models.RelationshipScore) int {
		return cmp.Compare(y.ReciprocityBalance, x.ReciprocityBalance)
	})
	slices.SortStableFunc(youOwe, func(x, y models.RelationshipScore) int {
		return cmp.Compare(x.ReciprocityBalance, y.ReciprocityBalance)
	})
	return top(theyOwe, n), top(youOwe, n)
}

func byVouchDesc(x, y models.RelationshipScore) int {
	return cmp.Compare(y.VouchScore, x.VouchScore)
}

func top[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
