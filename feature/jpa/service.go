package jpa

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"persistence-setup/core/filemanager"
	"persistence-setup/core/journal"
	"persistence-setup/core/reconcile"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/persistencexml"
	"persistence-setup/feature/jpa/platform"
	"persistence-setup/feature/jpa/pom"
	"persistence-setup/feature/jpa/propfile"
	"persistence-setup/feature/jpa/rules"
	"persistence-setup/feature/jpa/templates"
	"persistence-setup/feature/jpa/wiring"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrJournalDisabled is returned by History when no journal store is configured.
var ErrJournalDisabled = errors.New("change journal is disabled")

// managedSDK is owned by the GWT build setup and left alone when GWT is enabled.
var managedSDK = pom.Dependency{GroupID: "com.google.appengine", ArtifactID: "appengine-api-1.0-sdk"}

// AxisSummary counts what one reconciliation axis added and removed.
type AxisSummary struct {
	Axis    string             `json:"axis"`
	Added   int                `json:"added"`
	Removed int                `json:"removed"`
	Actions []reconcile.Action `json:"actions,omitempty"`
}

// Result is the outcome of one Setup invocation.
type Result struct {
	RunID    string               `json:"run_id"`
	Provider string               `json:"provider"`
	Database string               `json:"database"`
	DryRun   bool                 `json:"dry_run"`
	Changes  []filemanager.Change `json:"changes"`
	Warnings []string             `json:"warnings"`
	Axes     []AxisSummary        `json:"axes"`
}

// Changed reports whether any artifact was created, updated or deleted.
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}

// Status describes whether persistence is set up in the project.
type Status struct {
	Installed            bool `json:"installed"`
	InstallationPossible bool `json:"installation_possible"`
}

// Service reconciles a project's persistence setup against a selection.
type Service struct {
	fm       filemanager.FileManager
	bundle   *templates.Bundle
	matrix   *rules.Matrix
	dialects *catalog.Dialects
	journal  *journal.Store
	logger   *zap.Logger

	// one invocation at a time against the project tree
	mu sync.Mutex
}

// NewService creates a Service. store may be nil to disable the journal.
func NewService(fm filemanager.FileManager, bundle *templates.Bundle, matrix *rules.Matrix, dialects *catalog.Dialects, store *journal.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fm:       fm,
		bundle:   bundle,
		matrix:   matrix,
		dialects: dialects,
		journal:  store,
		logger:   logger,
	}
}

// LoadResources reads the rules matrix and dialect catalog. A non-empty
// rulesFile on fs overrides the matrix embedded in bundle.
func LoadResources(bundle *templates.Bundle, fs afero.Fs, rulesFile string) (*rules.Matrix, *catalog.Dialects, error) {
	var matrix *rules.Matrix
	var err error
	if rulesFile != "" {
		matrix, err = rules.LoadFile(fs, rulesFile)
	} else {
		matrix, err = rules.LoadDefault(bundle)
	}
	if err != nil {
		return nil, nil, err
	}

	data, err := bundle.Get(templates.Dialects)
	if err != nil {
		return nil, nil, err
	}
	dialects, err := catalog.ParseDialects(data)
	if err != nil {
		return nil, nil, err
	}
	return matrix, dialects, nil
}

// Setup runs one reconciliation of every persistence artifact for req.
// In dry-run mode the result lists the changes without touching the project.
func (s *Service) Setup(ctx context.Context, req catalog.Request, dryRun bool) (*Result, error) {
	sel, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	log := s.logger.With(
		zap.String("run_id", runID),
		zap.String("provider", sel.Provider.ID),
		zap.String("database", sel.Database.ID),
		zap.Bool("dry_run", dryRun))
	log.Info("Starting persistence setup")

	rec := filemanager.NewRecorder(s.fm, dryRun, log)
	result := &Result{
		RunID:    runID,
		Provider: sel.Provider.ID,
		Database: sel.Database.ID,
		DryRun:   rec.DryRun(),
		Warnings: []string{},
	}
	err = s.run(ctx, rec, sel, result)
	result.Changes = rec.Changes()
	if result.Changes == nil {
		result.Changes = []filemanager.Change{}
	}

	for _, w := range result.Warnings {
		log.Warn(w)
	}
	s.record(ctx, log, result)

	if err != nil {
		log.Error("Persistence setup failed", zap.Error(err), zap.Int("changes", len(result.Changes)))
		return result, err
	}
	if rec.DryRun() {
		log.Info("Persistence setup previewed", zap.Int("changes", len(result.Changes)))
	} else {
		log.Info("Persistence setup finished", zap.Int("changes", len(result.Changes)))
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, fm filemanager.FileManager, sel catalog.Selection, result *Result) error {
	project, err := pom.Load(ctx, fm)
	if err != nil {
		return err
	}
	meta := project.Metadata()
	hosted := sel.Database.IsManagedHosting()

	platforms := platform.New(fm, s.bundle)
	props := propfile.New(fm, s.bundle)
	warn := func(advisories []string) {
		result.Warnings = append(result.Warnings, advisories...)
	}

	if !hosted {
		if err := platforms.Toggle(ctx, false); err != nil {
			return fmt.Errorf("failed to disable platform fragments: %w", err)
		}
	}

	if err := wiring.New(fm, s.bundle).Update(ctx, sel); err != nil {
		return fmt.Errorf("failed to update wiring descriptor: %w", err)
	}

	advisories, err := persistencexml.New(fm, s.bundle, s.dialects).Update(ctx, sel, meta.Name)
	if err != nil {
		return fmt.Errorf("failed to update persistence descriptor: %w", err)
	}
	warn(advisories)

	if advisories, err = platforms.UpdateDescriptor(ctx, sel, meta.Name); err != nil {
		return fmt.Errorf("failed to update deployment descriptor: %w", err)
	}
	warn(advisories)

	if advisories, err = props.UpdatePlatformProperties(ctx, sel, meta.Name); err != nil {
		return fmt.Errorf("failed to update platform properties: %w", err)
	}
	warn(advisories)

	if !sel.HasJNDI() {
		if advisories, err = props.UpdateDatabaseProperties(ctx, sel, meta.Name); err != nil {
			return fmt.Errorf("failed to update database properties: %w", err)
		}
		warn(advisories)
	}

	if _, err := props.UpdateLog4j(ctx, sel.Provider); err != nil {
		return fmt.Errorf("failed to update log configuration: %w", err)
	}

	required, err := s.matrix.Required(sel.Database.Key, sel.Provider.ID)
	if err != nil {
		return err
	}
	universe := s.matrix.Universe()
	if meta.GWTEnabled {
		required = required.WithoutDependency(managedSDK.Key())
		universe = universe.WithoutDependency(managedSDK.Key())
	}

	if err := s.addProperties(ctx, fm, required.Properties); err != nil {
		return err
	}
	axes, err := s.reconcileBuild(ctx, fm, sel, required, universe)
	if err != nil {
		return err
	}
	result.Axes = axes

	if hosted {
		if err := platforms.Toggle(ctx, true); err != nil {
			return fmt.Errorf("failed to enable platform fragments: %w", err)
		}
	}
	return nil
}

func (s *Service) addProperties(ctx context.Context, fm filemanager.FileManager, properties []pom.Property) error {
	if len(properties) == 0 {
		return nil
	}
	project, err := pom.Load(ctx, fm)
	if err != nil {
		return err
	}

	added := 0
	for _, p := range properties {
		if project.AddProperty(p) {
			added++
		}
	}
	if added == 0 {
		return nil
	}
	if _, err := project.Save(ctx, fm, fmt.Sprintf("added %d build properties", added)); err != nil {
		return fmt.Errorf("failed to save build properties: %w", err)
	}
	return nil
}

// reconcileBuild brings every build axis in line with the selection and saves
// the build descriptor once.
func (s *Service) reconcileBuild(ctx context.Context, fm filemanager.FileManager, sel catalog.Selection, required, universe rules.Requirements) ([]AxisSummary, error) {
	project, err := pom.Load(ctx, fm)
	if err != nil {
		return nil, err
	}

	var axes []AxisSummary
	apply := func(summary AxisSummary, err error) error {
		if err != nil {
			return err
		}
		axes = append(axes, summary)
		return nil
	}

	if err := apply(applyAxis(required.Dependencies, universe.Dependencies, project.Dependencies(), project.DependencyMutator())); err != nil {
		return nil, err
	}
	if err := apply(applyAxis(required.Repositories, universe.Repositories, project.Repositories(), project.RepositoryMutator())); err != nil {
		return nil, err
	}
	if err := apply(applyAxis(required.PluginRepositories, universe.PluginRepositories, project.PluginRepositories(), project.PluginRepositoryMutator())); err != nil {
		return nil, err
	}
	if err := apply(applyAxis(required.Filters, universe.Filters, project.Filters(), project.FilterMutator())); err != nil {
		return nil, err
	}
	if err := apply(applyAxis(required.Resources, universe.Resources, project.Resources(), project.ResourceMutator())); err != nil {
		return nil, err
	}
	if err := apply(applyAxis(required.Plugins, universe.Plugins, project.Plugins(), project.PluginMutator())); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("build configured for %s on %s", sel.Provider.ID, sel.Database.ID)
	if _, err := project.Save(ctx, fm, description); err != nil {
		return nil, fmt.Errorf("failed to save build descriptor: %w", err)
	}
	return axes, nil
}

func applyAxis[T reconcile.Keyed](required, universe, existing *reconcile.Set[T], mutator reconcile.Mutator[T]) (AxisSummary, error) {
	plan, _, err := reconcile.ReconcileAndApply(required, universe, existing, mutator)
	if err != nil {
		return AxisSummary{}, err
	}
	summary := plan.Summary()
	return AxisSummary{
		Axis:    mutator.Name(),
		Added:   summary.Added,
		Removed: summary.Removed,
		Actions: plan.Actions(),
	}, nil
}

func (s *Service) record(ctx context.Context, log *zap.Logger, result *Result) {
	if s.journal == nil {
		return
	}
	run := journal.Run{
		ID:       result.RunID,
		Provider: result.Provider,
		Database: result.Database,
		DryRun:   result.DryRun,
		Changes:  result.Changes,
	}
	if err := s.journal.Record(ctx, run); err != nil {
		log.Warn("Failed to journal persistence setup", zap.Error(err))
	}
}

// Status probes whether persistence is installed, or could be.
func (s *Service) Status(ctx context.Context) (Status, error) {
	hasProject, err := s.fm.Exists(ctx, layout.POM)
	if err != nil {
		return Status{}, fmt.Errorf("failed to check build descriptor: %w", err)
	}
	installed, err := persistencexml.Exists(ctx, s.fm)
	if err != nil {
		return Status{}, fmt.Errorf("failed to check persistence descriptor: %w", err)
	}
	return Status{
		Installed:            hasProject && installed,
		InstallationPossible: hasProject && !installed,
	}, nil
}

// IsInstalled reports whether the project has a persistence setup.
func (s *Service) IsInstalled(ctx context.Context) (bool, error) {
	st, err := s.Status(ctx)
	return st.Installed, err
}

// IsInstallationPossible reports whether a project exists without a persistence setup.
func (s *Service) IsInstallationPossible(ctx context.Context) (bool, error) {
	st, err := s.Status(ctx)
	return st.InstallationPossible, err
}

// DatabaseProperties lists the connection settings as "key = value" lines,
// from database.properties or, when absent, from the persistence descriptor.
func (s *Service) DatabaseProperties(ctx context.Context) ([]string, error) {
	ok, err := s.fm.Exists(ctx, layout.DatabaseProperties)
	if err != nil {
		return nil, fmt.Errorf("failed to check database properties: %w", err)
	}
	if ok {
		return propfile.New(s.fm, s.bundle).Entries(ctx, layout.DatabaseProperties)
	}
	return persistencexml.ConnectionProperties(ctx, s.fm)
}

// Databases returns the database catalog.
func (s *Service) Databases() []catalog.Database {
	return catalog.Databases()
}

// Providers returns the ORM provider catalog.
func (s *Service) Providers() []catalog.Provider {
	return catalog.Providers()
}

// History returns the latest journaled changes, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]journal.Entry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.List(ctx, limit)
}
