package app

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/mmrzaf/rdgen/internal/datagen"
	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/exec"
	"github.com/mmrzaf/rdgen/internal/hashing"
	"github.com/mmrzaf/rdgen/internal/infra/repos/runs"
	"github.com/mmrzaf/rdgen/internal/infra/repos/schemas"
	"github.com/mmrzaf/rdgen/internal/infra/targets"
	"github.com/mmrzaf/rdgen/internal/logging"
	"github.com/mmrzaf/rdgen/internal/registry"
	"github.com/mmrzaf/rdgen/internal/validation"
)

// ValidationError marks a request the caller must fix before retrying.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(msg string, err error) error {
	return &ValidationError{Err: fmt.Errorf("%s: %w", msg, err)}
}

// Defaults fill in whatever a request and its schema leave unset.
type Defaults struct {
	Count     int
	Format    string
	BatchSize int
	TableMode string
}

// TargetFactory builds an unconnected sink for a target config.
type TargetFactory func(cfg *domain.TargetConfig) (exec.Target, error)

type GenerateService struct {
	schemaRepo    schemas.Repository
	runRepo       runs.Repository
	fieldRegistry *registry.FieldRegistry
	validator     *validation.Validator
	executor      *exec.Executor
	newTarget     TargetFactory
	defaults      Defaults
	logger        *logging.Logger
}

func NewGenerateService(
	schemaRepo schemas.Repository,
	runRepo runs.Repository,
	fieldRegistry *registry.FieldRegistry,
	defaults Defaults,
	logger *logging.Logger,
) *GenerateService {
	if logger == nil {
		logger = logging.Discard()
	}
	if defaults.Count <= 0 {
		defaults.Count = datagen.DefaultCount
	}
	if defaults.BatchSize <= 0 {
		defaults.BatchSize = exec.DefaultBatchSize
	}
	if defaults.TableMode == "" {
		defaults.TableMode = domain.TableModeCreate
	}
	return &GenerateService{
		schemaRepo:    schemaRepo,
		runRepo:       runRepo,
		fieldRegistry: fieldRegistry,
		validator:     validation.NewValidator(fieldRegistry),
		executor:      exec.NewExecutor(logger),
		newTarget:     targets.New,
		defaults:      defaults,
		logger:        logger.WithComponent("generate"),
	}
}

// WithTargetFactory swaps the sink constructor, mainly for tests.
func (s *GenerateService) WithTargetFactory(f TargetFactory) *GenerateService {
	s.newTarget = f
	return s
}

func (s *GenerateService) Validator() *validation.Validator { return s.validator }

func (s *GenerateService) FieldTypes() []string { return s.fieldRegistry.List() }

// Generate resolves the schema, produces one batch of rows and optionally
// writes them to the request's target. Every call that gets past validation
// is recorded as a run.
func (s *GenerateService) Generate(req *domain.GenerateRequest) (*domain.GenerateResult, error) {
	if err := s.validator.ValidateGenerateRequest(req); err != nil {
		return nil, invalid("invalid generate request", err)
	}

	schema := req.Schema
	if req.SchemaID != "" {
		loaded, err := s.schemaRepo.Get(req.SchemaID)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		if err := s.validator.ValidateSchema(loaded); err != nil {
			return nil, invalid("schema validation failed", err)
		}
		if req.Target != nil {
			if err := s.validator.ValidateTarget(req.Target, loaded); err != nil {
				return nil, invalid("target validation failed", err)
			}
		}
		schema = loaded
	}

	seed := generateSeed()
	if req.Seed != nil {
		seed = *req.Seed
	} else if schema.Seed != nil {
		seed = *schema.Seed
	}

	// Zero means unset. Any other request count, negative included, is
	// clamped by the generator.
	count := req.Count
	if count == 0 {
		count = firstPositive(schema.Count, s.defaults.Count)
	}
	format, err := domain.ParseFormat(firstNonEmpty(req.Format, schema.Format, s.defaults.Format))
	if err != nil {
		return nil, invalid("invalid format", err)
	}

	configHash, err := hashing.HashSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to hash schema: %w", err)
	}

	run := &domain.Run{
		SchemaID:       schema.ID,
		SchemaName:     schema.Name,
		Seed:           seed,
		ConfigHash:     configHash,
		Format:         format.String(),
		CountRequested: count,
		CountGenerated: datagen.ClampCount(count),
		Status:         domain.RunStatusRunning,
		StartedAt:      time.Now().UTC(),
	}
	if req.Target != nil {
		run.TargetKind = req.Target.Kind
		run.TargetTable = req.Target.Table
	}
	if s.runRepo != nil {
		if err := s.runRepo.Create(run); err != nil {
			return nil, fmt.Errorf("failed to create run: %w", err)
		}
	}

	s.logger.Infow("run.start", map[string]interface{}{
		"run_id": run.ID,
		"schema": schema.Name,
		"seed":   seed,
		"count":  run.CountGenerated,
		"format": run.Format,
	})

	result, err := s.execute(run, schema, req.Target, seed, format)
	if err != nil {
		s.finish(run, err)
		return nil, err
	}
	s.finish(run, nil)
	result.Run = run
	return result, nil
}

func (s *GenerateService) execute(run *domain.Run, schema *domain.Schema, target *domain.TargetConfig, seed int64, format domain.Format) (*domain.GenerateResult, error) {
	gen, err := datagen.FromSchema(schema, s.fieldRegistry, datagen.WithSeed(seed), datagen.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	out, err := gen.Generate(run.CountRequested, format)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	rows := gen.Rows()
	run.RowsTotal = len(rows)

	if target != nil {
		if err := s.write(rows, gen.Table(target.Table), target); err != nil {
			return nil, err
		}
	}

	result := &domain.GenerateResult{}
	switch v := out.(type) {
	case string:
		result.JSON = v
	case []domain.Row:
		result.Rows = v
	}
	return result, nil
}

func (s *GenerateService) write(rows []domain.Row, table *domain.Table, cfg *domain.TargetConfig) error {
	tgt, err := s.newTarget(cfg)
	if err != nil {
		return err
	}
	mode := cfg.Mode
	if mode == "" {
		mode = s.defaults.TableMode
	}
	s.logger.Infow("target.write", map[string]interface{}{
		"kind":  cfg.Kind,
		"dsn":   targets.RedactDSN(cfg.DSN),
		"table": cfg.Table,
		"mode":  mode,
	})
	if _, err := s.executor.Write(rows, table, tgt, mode, s.defaults.BatchSize); err != nil {
		return fmt.Errorf("target write failed: %w", err)
	}
	return nil
}

func (s *GenerateService) finish(run *domain.Run, runErr error) {
	now := time.Now().UTC()
	run.CompletedAt = &now
	if runErr != nil {
		run.Status = domain.RunStatusFailed
		run.Error = runErr.Error()
		s.logger.Errorw("run.failed", map[string]interface{}{"run_id": run.ID, "error": run.Error})
	} else {
		run.Status = domain.RunStatusSuccess
		s.logger.Infow("run.done", map[string]interface{}{
			"run_id":   run.ID,
			"rows":     run.RowsTotal,
			"duration": now.Sub(run.StartedAt).String(),
		})
	}
	if s.runRepo == nil {
		return
	}
	if err := s.runRepo.Update(run); err != nil {
		s.logger.Error("Failed to update run %s: %v", run.ID, err)
	}
}

func (s *GenerateService) GetRun(id string) (*domain.Run, error) {
	if s.runRepo == nil {
		return nil, fmt.Errorf("%w: %s", runs.ErrNotFound, id)
	}
	return s.runRepo.Get(id)
}

func (s *GenerateService) ListRuns(limit int, status string) ([]*domain.Run, error) {
	if s.runRepo == nil {
		return []*domain.Run{}, nil
	}
	return s.runRepo.List(limit, status)
}

func (s *GenerateService) ListSchemas() ([]*domain.Schema, error) { return s.schemaRepo.List() }

func (s *GenerateService) GetSchema(id string) (*domain.Schema, error) { return s.schemaRepo.Get(id) }

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func generateSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
