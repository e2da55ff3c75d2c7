// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/vechain/tokencore/builtin"
	"github.com/vechain/tokencore/metrics"
)

var (
	metricCallCount    = metrics.LazyLoadCounterVec("call_count", []string{"contract", "method", "status"})
	metricCallDuration = metrics.LazyLoadHistogramVec("call_duration_ms", []string{"contract", "method"}, metrics.BucketCalls)
)

func metricsCall(method *builtin.NativeMethod, status string, start time.Time) {
	if !metrics.Enabled() {
		return
	}
	metricCallCount().AddWithLabel(1, map[string]string{
		"contract": method.Contract.Name,
		"method":   method.Name,
		"status":   status,
	})
	metricCallDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{
		"contract": method.Contract.Name,
		"method":   method.Name,
	})
}
