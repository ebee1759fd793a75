//go:generate moq --stub -out 0moq_test.go . Catalog:CatalogMock Applier:ApplierMock

package importer

import (
	"context"
	"fmt"
	"sync"

	"github.com/davseby/asyncapi-importer/internal/capture"
	"github.com/davseby/asyncapi-importer/internal/catalog"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// _fallbackVersion is the base version used when the document version is
// not a semantic version.
const _fallbackVersion = "1.0.0"

// Kind is the kind of an event catalog object.
type Kind string

// Supported object kinds, in import order.
const (
	KindEnum        Kind = "enum"
	KindSchema      Kind = "schema"
	KindEvent       Kind = "event"
	KindApplication Kind = "application"
	KindEventAPI    Kind = "event api"
)

// Item is a single object to create or update.
type Item struct {
	Kind    Kind
	Name    string
	Version string
}

// Options holds the import settings of a single request.
type Options struct {
	// DomainID selects the target application domain by id. It takes
	// precedence over DomainName.
	DomainID string

	// DomainName selects the target application domain by name.
	DomainName string

	// Strategy selects how object versions are incremented.
	Strategy VersionStrategy

	// EventsOnly disables the application import.
	EventsOnly bool

	// DisableCascadeUpdate stops updated objects from bumping the
	// versions of the objects referencing them.
	DisableCascadeUpdate bool

	// CreateEventAPI enables the event API creation.
	CreateEventAPI bool
}

// Result summarizes an import.
type Result struct {
	// Domain is the target application domain.
	Domain catalog.Domain

	// Applied holds the amount of applied items per kind.
	Applied map[Kind]int
}

// Config holds the importer settings.
type Config struct {
	// Workers is the maximum amount of items applied concurrently within
	// a single import stage.
	Workers int `default:"4" yaml:"workers"`
}

// Catalog is the part of the catalog client used by the importer.
type Catalog interface {
	// ApplicationDomain should return the domain with the given id.
	ApplicationDomain(ctx context.Context, id string) (catalog.Domain, error)

	// FindApplicationDomain should return the domain with the given name.
	FindApplicationDomain(ctx context.Context, name string) (catalog.Domain, error)
}

// Applier creates or updates a single catalog object.
type Applier interface {
	// Apply should apply the item within the domain.
	Apply(ctx context.Context, domain catalog.Domain, item Item) error
}

// Importer imports AsyncAPI documents.
type Importer struct {
	log *slog.Logger

	applier Applier
	workers int
}

// NewImporter creates a new importer.
func NewImporter(log *slog.Logger, applier Applier, cfg Config) *Importer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Importer{
		log:     log.With("job", "importer"),
		applier: applier,
		workers: workers,
	}
}

// Import resolves the target domain and applies the document objects
// stage by stage. Items of a single stage are applied concurrently, each
// on an origin derived from the request's one.
func (i *Importer) Import(ctx context.Context, cat Catalog, doc *Document, opts Options) (Result, error) {
	i.log.InfoContext(ctx, fmt.Sprintf("importing %q version %s", doc.Info.Title, doc.Info.Version),
		slog.String("asyncapi", doc.AsyncAPI),
	)

	domain, err := i.resolveDomain(ctx, cat, opts)
	if err != nil {
		return Result{}, err
	}

	i.log.InfoContext(ctx, fmt.Sprintf("resolved application domain %q", domain.Name),
		slog.String("domain_id", domain.ID),
	)

	version, err := opts.Strategy.Next(doc.Info.Version)
	if err != nil {
		i.log.WarnContext(ctx, fmt.Sprintf("document version is not semantic, new objects use version %s", _fallbackVersion),
			slog.String("error", err.Error()),
		)

		version = _fallbackVersion
	}

	res := Result{
		Domain:  domain,
		Applied: make(map[Kind]int),
	}

	for _, stage := range i.plan(doc, opts, version) {
		if len(stage) == 0 {
			continue
		}

		if err := i.applyStage(ctx, domain, stage, res.Applied); err != nil {
			return res, err
		}
	}

	if !opts.DisableCascadeUpdate && res.Applied[KindEvent] > 0 {
		i.log.DebugContext(ctx, "objects referencing updated events are due for a cascade update")
	}

	i.log.InfoContext(ctx, fmt.Sprintf(
		"import summary: %d enum(s), %d schema(s), %d event(s), %d application(s), %d event api(s)",
		res.Applied[KindEnum],
		res.Applied[KindSchema],
		res.Applied[KindEvent],
		res.Applied[KindApplication],
		res.Applied[KindEventAPI],
	))

	return res, nil
}

// resolveDomain finds the target application domain.
func (i *Importer) resolveDomain(ctx context.Context, cat Catalog, opts Options) (catalog.Domain, error) {
	if opts.DomainID != "" {
		i.log.DebugContext(ctx, "resolving application domain by id", slog.String("domain_id", opts.DomainID))

		domain, err := cat.ApplicationDomain(ctx, opts.DomainID)
		if err != nil {
			return catalog.Domain{}, fmt.Errorf("resolving application domain: %w", err)
		}

		return domain, nil
	}

	i.log.DebugContext(ctx, "resolving application domain by name", slog.String("domain_name", opts.DomainName))

	domain, err := cat.FindApplicationDomain(ctx, opts.DomainName)
	if err != nil {
		return catalog.Domain{}, fmt.Errorf("resolving application domain: %w", err)
	}

	return domain, nil
}

// plan returns the items to apply, grouped into ordered stages.
func (i *Importer) plan(doc *Document, opts Options, version string) [][]Item {
	items := func(kind Kind, names []string) []Item {
		res := make([]Item, 0, len(names))
		for _, name := range names {
			res = append(res, Item{Kind: kind, Name: name, Version: version})
		}

		return res
	}

	stages := [][]Item{
		items(KindEnum, doc.EnumNames()),
		items(KindSchema, doc.SchemaNames()),
		items(KindEvent, doc.EventNames()),
	}

	if !opts.EventsOnly {
		stages = append(stages, items(KindApplication, []string{doc.Info.Title}))
	}

	if opts.CreateEventAPI {
		stages = append(stages, items(KindEventAPI, []string{doc.Info.Title + " API"}))
	}

	return stages
}

// applyStage applies the stage items concurrently and waits for all of
// them to finish. A panicking applier fails the stage instead of the
// process.
func (i *Importer) applyStage(ctx context.Context, domain catalog.Domain, stage []Item, applied map[Kind]int) error {
	i.log.DebugContext(ctx, fmt.Sprintf("applying %d %s object(s)", len(stage), stage[0].Kind))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for n, item := range stage {
		item := item
		wctx := capture.Derive(gctx, fmt.Sprintf("worker-%d", n%i.workers+1))

		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					i.log.ErrorContext(wctx, fmt.Sprintf("applying %s %q panicked", item.Kind, item.Name),
						slog.Any("panic", p),
					)

					err = fmt.Errorf("applying %s %q: panic: %v", item.Kind, item.Name, p)
				}
			}()

			if err := i.applier.Apply(wctx, domain, item); err != nil {
				return fmt.Errorf("applying %s %q: %w", item.Kind, item.Name, err)
			}

			mu.Lock()
			applied[item.Kind]++
			mu.Unlock()

			return nil
		})
	}

	return g.Wait()
}

// LogApplier records the items in the log without contacting the
// catalog.
type LogApplier struct {
	log *slog.Logger
}

// NewLogApplier creates a new log applier.
func NewLogApplier(log *slog.Logger) *LogApplier {
	return &LogApplier{
		log: log.With("job", "applier"),
	}
}

// Apply logs the item.
func (a *LogApplier) Apply(ctx context.Context, domain catalog.Domain, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.log.InfoContext(ctx, fmt.Sprintf("%s %q version %s in domain %q", item.Kind, item.Name, item.Version, domain.Name))

	return nil
}
