package app

import (
	"fmt"
	"time"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/exec"
)

// CheckTarget connects to the sink described by cfg and probes whether it can
// create, fill and truncate a scratch table. Table and mode are ignored.
func (s *GenerateService) CheckTarget(cfg *domain.TargetConfig) (*domain.TargetCheck, error) {
	check := &domain.TargetCheck{
		Kind:      cfg.Kind,
		CheckedAt: time.Now().UTC(),
	}

	probe := *cfg
	probe.Table = fmt.Sprintf("rdgen_check_%d", time.Now().UnixNano())
	probe.Mode = ""
	if err := s.validator.ValidateTarget(&probe, nil); err != nil {
		check.Error = err.Error()
		return check, err
	}

	start := time.Now()
	tgt, err := s.newTarget(&probe)
	if err != nil {
		check.Error = err.Error()
		return check, err
	}
	if err := tgt.Connect(); err != nil {
		check.Error = err.Error()
		check.LatencyMS = time.Since(start).Milliseconds()
		return check, err
	}
	defer tgt.Close()

	check.OK = true
	check.LatencyMS = time.Since(start).Milliseconds()
	if v, ok := tgt.(exec.ServerVersioner); ok {
		if ver, verErr := v.ServerVersion(); verErr == nil {
			check.ServerVer = ver
		}
	}
	check.Capabilities = probeCapabilities(tgt, probe.Table)

	s.logger.Infow("target.check", map[string]interface{}{
		"kind":       cfg.Kind,
		"latency_ms": check.LatencyMS,
		"version":    check.ServerVer,
	})
	return check, nil
}

func probeCapabilities(tgt exec.Target, tableName string) domain.TargetCapabilities {
	table := &domain.Table{
		Name:    tableName,
		Columns: []domain.Column{{Name: "id", Type: domain.ColumnTypeBigInt}},
	}

	var caps domain.TargetCapabilities
	if err := tgt.CreateTableIfNotExists(table); err != nil {
		return caps
	}
	caps.CanCreate = true

	if err := tgt.InsertBatch(table.Name, []string{"id"}, [][]interface{}{{int64(1)}}); err != nil {
		return caps
	}
	caps.CanInsert = true

	if err := tgt.TruncateTable(table.Name); err != nil {
		return caps
	}
	caps.CanTruncate = true
	return caps
}
