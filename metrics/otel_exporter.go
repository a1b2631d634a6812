package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const serviceName = "bookshelf-api"

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	collector     Collector

	// OTel meters and instruments
	meter        metric.Meter
	recordsGauge metric.Int64ObservableGauge
	errorCounter metric.Int64Counter
}

/* NewOTelExporter creates an OpenTelemetry metrics exporter with Prometheus format.
 * Each exporter owns its registry, so several can coexist in one process.
 */
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	registry := promclient.NewRegistry()

	// Create Prometheus exporter
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.instance.id", uuid.NewString()),
	)

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		serviceName,
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Stored records gauge (per collection)
	oe.recordsGauge, err = oe.meter.Int64ObservableGauge(
		"store.records",
		metric.WithDescription("Number of stored records per collection"),
		metric.WithUnit("{records}"),
		metric.WithInt64Callback(oe.observeRecords),
	)
	if err != nil {
		return fmt.Errorf("creating records gauge: %w", err)
	}

	// Error responses counter (per error kind)
	oe.errorCounter, err = oe.meter.Int64Counter(
		"api.errors",
		metric.WithDescription("Number of error responses by kind"),
		metric.WithUnit("{errors}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}

// observeRecords is a callback that reports record counts
func (oe *OTelExporter) observeRecords(ctx context.Context, observer metric.Int64Observer) error {
	records, err := oe.collector.GetRecordCounts(ctx)
	if err != nil {
		return err
	}

	for collection, count := range records {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("collection", collection),
		))
	}

	return nil
}

// RecordError counts one error response of the given kind
func (oe *OTelExporter) RecordError(ctx context.Context, kind string) {
	oe.errorCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("error.kind", kind),
	))
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
