// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package facts

import (
	"context"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/khurmatov/filestate/metrics"
)

// StandardFacts returns the facts used to select a suitable provider for the node
func StandardFacts(ctx context.Context) (map[string]any, error) {
	timer := prometheus.NewTimer(metrics.FactGatherTime.WithLabelValues())
	defer timer.ObserveDuration()

	facts := map[string]any{
		"os":   runtime.GOOS,
		"arch": runtime.GOARCH,
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return facts, nil
	}

	facts["hostname"] = info.Hostname
	facts["platform"] = info.Platform
	facts["platform_version"] = info.PlatformVersion
	facts["platform_family"] = info.PlatformFamily
	facts["kernel"] = info.KernelVersion
	facts["virtualization"] = info.VirtualizationSystem

	return facts, nil
}
