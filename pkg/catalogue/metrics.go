// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalogue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/askap/vodeposit/pkg/errors"
	"github.com/askap/vodeposit/pkg/validator"
)

var (
	// File outcome metrics
	filesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodeposit_files_total",
			Help: "Total number of catalogue files processed, by type, mode and status",
		},
		[]string{"type", "mode", "status"},
	)
	fileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vodeposit_file_duration_seconds",
			Help:    "Duration of decoding and validating one catalogue file in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"mode"},
	)

	// Row and error metrics
	rowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodeposit_rows_total",
			Help: "Total number of table rows visited, by type and outcome",
		},
		[]string{"type", "outcome"},
	)
	validationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodeposit_validation_errors_total",
			Help: "Total number of reported validation errors, by type and kind",
		},
		[]string{"type", "kind"},
	)
)

const (
	statusAccepted = "accepted"
	statusRejected = "rejected"
	statusFailed   = "failed"
)

func observeResult(t Type, result *validator.ValidationResult) {
	rowsTotal.WithLabelValues(string(t), "delivered").Add(float64(result.Summary.RowsDelivered))
	rowsTotal.WithLabelValues(string(t), "rejected").Add(float64(result.Summary.RowsRejected))
	for _, e := range result.ValidationErrors() {
		validationErrorsTotal.WithLabelValues(string(t), string(e.Kind)).Inc()
	}
}

func observeFile(t Type, mode validator.Mode, status string, seconds float64) {
	filesTotal.WithLabelValues(string(t), string(mode), status).Inc()
	fileDuration.WithLabelValues(string(mode)).Observe(seconds)
}

// WriteMetrics writes the default registry to path in the text exposition
// format, for collection by a node exporter textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics", err,
			map[string]any{"path": path})
	}
	return nil
}
