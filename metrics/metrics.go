// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khurmatov/filestate/model"
)

var (
	NameSpace = "filestate"
	Subsystem = "ensure"

	// EnsureTime is a summary of the time taken to converge a particular file
	EnsureTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "duration_seconds"),
		Help: "Time taken to converge a particular file",
	}, []string{"provider", "name"})

	// StateChanged counts how many ensure runs changed the target
	StateChanged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "state_changed_count"),
		Help: "How many ensure runs changed the target file",
	}, []string{"type", "name"})

	// StateFailed counts how many ensure runs failed
	StateFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "state_failed_count"),
		Help: "How many ensure runs failed",
	}, []string{"type", "name"})

	// StateNoop counts how many ensure runs were in noop mode
	StateNoop = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "state_noop_count"),
		Help: "How many ensure runs were in noop mode",
	}, []string{"type", "name"})

	// StateStable counts how many ensure runs found the target already converged
	StateStable = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "state_stable_count"),
		Help: "How many ensure runs found the target already converged",
	}, []string{"type", "name"})

	// StateTotal counts how many ensure runs were processed
	StateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "state_total_count"),
		Help: "How many ensure runs were processed",
	}, []string{"type", "name"})

	// BackupCreated counts how many backup copies were made before overwrites
	BackupCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "backup_created_count"),
		Help: "How many backup copies were made before overwrites",
	}, []string{"name"})

	// FactGatherTime is a summary of the time taken to gather facts
	FactGatherTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "facts_gather_duration_seconds"),
		Help: "Time taken to gather facts",
	}, []string{})
)

func RegisterMetrics() {
	prometheus.MustRegister(EnsureTime)
	prometheus.MustRegister(StateChanged)
	prometheus.MustRegister(StateFailed)
	prometheus.MustRegister(StateNoop)
	prometheus.MustRegister(StateStable)
	prometheus.MustRegister(StateTotal)
	prometheus.MustRegister(BackupCreated)
	prometheus.MustRegister(FactGatherTime)
}

func ListenAndServe(port int, log model.Logger) {
	if port <= 0 {
		return
	}

	go func() {
		log.Info("Starting monitoring server", "port", port)
		http.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		if err != nil {
			log.Error("HTTP Listener failed", "error", err)
		}
	}()
}
