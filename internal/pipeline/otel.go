package pipeline

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/draftline/outline/internal/pipeline"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
