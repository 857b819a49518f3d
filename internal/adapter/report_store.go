package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/forkest/internal/model"
)

// ReportStore persists run reports.
type ReportStore interface {
	// SaveRun writes the run into dir and returns the file it created.
	SaveRun(dir m.Path, run m.RunReport) (m.Path, error)

	// LoadRun reads a single run report file.
	LoadRun(file m.Path) (m.RunReport, error)

	// LatestRun returns the most recently written run file in dir.
	LatestRun(dir m.Path) (m.Path, error)
}

type yamlReportStore struct{}

// NewReportStore constructs the YAML-file backed ReportStore.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

func (s *yamlReportStore) SaveRun(dir m.Path, run m.RunReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(run)
	if err != nil {
		return "", fmt.Errorf("marshal run report: %w", err)
	}

	name := fmt.Sprintf("run-%s.yaml", run.StartedAt.Format("20060102-150405"))
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write run report: %w", err)
	}

	return m.Path(path), nil
}

func (s *yamlReportStore) LoadRun(file m.Path) (m.RunReport, error) {
	data, err := os.ReadFile(string(file))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read run report: %w", err)
	}

	var run m.RunReport
	if err := yaml.Unmarshal(data, &run); err != nil {
		return m.RunReport{}, fmt.Errorf("unmarshal run report %s: %w", file, err)
	}

	return run, nil
}

func (s *yamlReportStore) LatestRun(dir m.Path) (m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return "", fmt.Errorf("read reports directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		names = append(names, entry.Name())
	}

	if len(names) == 0 {
		return "", fmt.Errorf("no run reports in %s", dir)
	}

	// Report names embed the start timestamp, so lexical order is
	// chronological order.
	sort.Strings(names)

	return m.Path(filepath.Join(string(dir), names[len(names)-1])), nil
}
