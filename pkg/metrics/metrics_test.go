package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	require.NotNil(t, r.MutationsTotal)
	require.NotNil(t, r.SnapshotsTotal)
	require.NotNil(t, r.Nodes)
	require.NotNil(t, r.Gatherer())
}

func TestRecordMutation(t *testing.T) {
	r := NewRegistry()
	r.RecordMutation("add_node", "success")
	r.RecordMutation("add_node", "success")
	r.RecordMutation("add_node", "rejected")

	counter, err := r.MutationsTotal.GetMetricWithLabelValues("add_node", "success")
	require.NoError(t, err)

	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	assert.Equal(t, 2.0, metric.GetCounter().GetValue())
}

func TestSetGraphSize(t *testing.T) {
	r := NewRegistry()
	r.SetGraphSize(5, 17, 40, 26)

	gauge, err := r.Nodes.GetMetricWithLabelValues("capability")
	require.NoError(t, err)

	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	assert.Equal(t, 17.0, metric.GetGauge().GetValue())

	require.NoError(t, r.Edges.Write(&metric))
	assert.Equal(t, 26.0, metric.GetGauge().GetValue())
}

func TestSnapshotGauge(t *testing.T) {
	r := NewRegistry()
	r.RecordSnapshot(1)
	r.RecordSnapshot(2)

	var metric dto.Metric
	require.NoError(t, r.SnapshotsTotal.Write(&metric))
	assert.Equal(t, 2.0, metric.GetCounter().GetValue())

	require.NoError(t, r.VersionEntries.Write(&metric))
	assert.Equal(t, 2.0, metric.GetGauge().GetValue())
}

func TestGatherIncludesAllFamilies(t *testing.T) {
	r := NewRegistry()
	r.RecordMutation("connect", "success")
	r.RecordExport("json")
	r.RecordRestore()

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["framework_mutations_total"])
	assert.True(t, names["framework_exports_total"])
	assert.True(t, names["framework_restores_total"])
}
