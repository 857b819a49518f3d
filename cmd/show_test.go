package cmd

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/forkest/internal/adapter"
	domainmocks "gooze.dev/pkg/forkest/internal/domain/mocks"
	m "gooze.dev/pkg/forkest/internal/model"
)

func TestShowCmd_ExplicitReportFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newTestRootCmd(newShowCmd())

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Show", mock.Anything, m.Path("reports/run.yaml")).Return(nil)

	cmd.SetArgs([]string{"show", "reports/run.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestShowCmd_DefaultsToLatestReport(t *testing.T) {
	dir := m.Path(t.TempDir())

	latest, err := adapter.NewReportStore().SaveRun(dir, m.RunReport{
		Binary:    "thing.test",
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	viper.Set(outputFlagName, string(dir))
	t.Cleanup(func() { viper.Set(outputFlagName, defaultReportsDir) })

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newTestRootCmd(newShowCmd())

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Show", mock.Anything, latest).Return(nil)

	cmd.SetArgs([]string{"show"})
	require.NoError(t, cmd.Execute())
}

func TestShowCmd_NoReportsFails(t *testing.T) {
	viper.Set(outputFlagName, t.TempDir())
	t.Cleanup(func() { viper.Set(outputFlagName, defaultReportsDir) })

	cmd := newTestRootCmd(newShowCmd())

	cmd.SetArgs([]string{"show"})
	require.Error(t, cmd.Execute())
}

func TestNewShowCmd(t *testing.T) {
	cmd := newShowCmd()

	assert.Equal(t, "show [report-file]", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
}
