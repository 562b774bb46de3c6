package book

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var lookupsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "books_lookups_total",
	Help: "Count of book lookups, by outcome",
}, []string{"outcome"})
