package jobs

import (
	"github.com/straye-as/fieldservice-api/internal/repository"
	"go.uber.org/zap"
)

// StoreStatsJobName is the name of the store statistics job
const StoreStatsJobName = "store_stats"

// StatsSource reports per-collection record counts
type StatsSource interface {
	Stats() repository.Stats
}

// EntityGauge records the size of a collection
type EntityGauge interface {
	SetEntityCount(collection string, n int)
}

// StoreStatsJob publishes the number of records in each store collection.
type StoreStatsJob struct {
	source StatsSource
	gauge  EntityGauge
	logger *zap.Logger
}

func NewStoreStatsJob(source StatsSource, gauge EntityGauge, logger *zap.Logger) *StoreStatsJob {
	return &StoreStatsJob{
		source: source,
		gauge:  gauge,
		logger: logger,
	}
}

// Run reads the current counts and updates the gauge
func (j *StoreStatsJob) Run() {
	stats := j.source.Stats()

	j.gauge.SetEntityCount("customers", stats.Customers)
	j.gauge.SetEntityCount("technicians", stats.Technicians)
	j.gauge.SetEntityCount("quotes", stats.Quotes)
	j.gauge.SetEntityCount("jobs", stats.Jobs)
	j.gauge.SetEntityCount("invoices", stats.Invoices)

	j.logger.Debug("store statistics updated",
		zap.Int("customers", stats.Customers),
		zap.Int("technicians", stats.Technicians),
		zap.Int("quotes", stats.Quotes),
		zap.Int("jobs", stats.Jobs),
		zap.Int("invoices", stats.Invoices))
}

// RegisterStoreStatsJob registers the statistics job with the scheduler and
// runs it once so the gauges are populated before the first tick.
func RegisterStoreStatsJob(scheduler *Scheduler, source StatsSource, gauge EntityGauge, logger *zap.Logger, cronExpr string) error {
	job := NewStoreStatsJob(source, gauge, logger)
	if err := scheduler.AddJob(StoreStatsJobName, cronExpr, job.Run); err != nil {
		return err
	}
	job.Run()
	return nil
}
