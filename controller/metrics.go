// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	initialize prometheus.Counter
	increment  prometheus.Counter
	rejected   prometheus.Counter

	feesPaid      prometheus.Counter
	submitLatency metric.Averager
}

func newMetrics(namespace string) (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	submitLatency, err := metric.NewAverager(
		namespace+"_submit_latency",
		"time spent executing and committing a transaction",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		initialize: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "initialize",
			Help:      "number of accepted initialize actions",
		}),
		increment: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "increment",
			Help:      "number of accepted increment actions",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected",
			Help:      "number of rejected transactions",
		}),
		feesPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fees_paid",
			Help:      "allocation fees debited from sponsors",
		}),
		submitLatency: submitLatency,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.initialize),
		r.Register(m.increment),
		r.Register(m.rejected),
		r.Register(m.feesPaid),
	)
	return r, m, errs.Err
}
