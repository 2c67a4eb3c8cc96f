package jobs_test

import (
	"context"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/straye-as/fieldservice-api/internal/jobs"
	"github.com/straye-as/fieldservice-api/internal/metrics"
	"github.com/straye-as/fieldservice-api/internal/repository"
	"github.com/straye-as/fieldservice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_AddRemove(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "*/30 * * * * *", func() {}))
	require.NoError(t, s.AddJob("a", "@every 1m", func() {}))
	require.NoError(t, s.AddJob("c", "15 * * * *", func() {}))
	assert.Equal(t, []string{"a", "b", "c"}, s.JobNames())

	assert.Error(t, s.AddJob("a", "@every 1m", func() {}), "duplicate name")
	assert.Error(t, s.AddJob("d", "not a cron", func() {}))

	require.NoError(t, s.RemoveJob("b"))
	assert.Error(t, s.RemoveJob("b"))
	assert.Equal(t, []string{"a", "c"}, s.JobNames())

	s.Start()
	<-s.Stop().Done()
}

func TestStoreStatsJob(t *testing.T) {
	store := testutil.NewTestStore(t)
	testutil.CreateTestCustomer(t, store, "Acme")
	testutil.CreateTestCustomer(t, store, "Bright")
	testutil.CreateTestTechnician(t, store, "Jules")

	reg := metrics.NewRegistry()
	s := jobs.NewScheduler(zap.NewNop())
	require.NoError(t, jobs.RegisterStoreStatsJob(s, store, reg, zap.NewNop(), "@every 1h"))
	assert.Equal(t, []string{jobs.StoreStatsJobName}, s.JobNames())

	assert.Equal(t, 2.0, promtestutil.ToFloat64(reg.Entities.WithLabelValues("customers")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(reg.Entities.WithLabelValues("technicians")))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(reg.Entities.WithLabelValues("invoices")))

	require.NoError(t, repository.Seed(context.Background(), store))
	jobs.NewStoreStatsJob(store, reg, zap.NewNop()).Run()
	assert.Equal(t, 4.0, promtestutil.ToFloat64(reg.Entities.WithLabelValues("customers")))
	assert.Equal(t, 3.0, promtestutil.ToFloat64(reg.Entities.WithLabelValues("technicians")))
}
