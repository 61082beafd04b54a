package targets

import (
	"fmt"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/exec"
	"github.com/mmrzaf/rdgen/internal/infra/targets/elasticsearch"
	"github.com/mmrzaf/rdgen/internal/infra/targets/postgres"
	"github.com/mmrzaf/rdgen/internal/infra/targets/sqlite"
)

// New returns an unconnected row sink for cfg.
func New(cfg *domain.TargetConfig) (exec.Target, error) {
	switch cfg.Kind {
	case domain.TargetKindPostgres:
		return postgres.NewTableSink(cfg.DSN, cfg.Schema), nil
	case domain.TargetKindSQLite:
		return sqlite.NewTableSink(cfg.DSN), nil
	case domain.TargetKindElasticsearch:
		return elasticsearch.NewIndexSink(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported target kind: %s", cfg.Kind)
	}
}
