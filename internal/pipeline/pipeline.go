// Package pipeline wires the filter/integrator to a configured list of
// metric strategies and merges their outputs into one result.
package pipeline

import (
	"fmt"
	"log"

	"CrashPulse/internal/dsp"
	"CrashPulse/internal/metrics"
	"CrashPulse/internal/model"
)

// ErrorKeyPrefix marks the recorded failure of a single metric in the
// result mapping.
const ErrorKeyPrefix = "Error_"

// Pipeline runs the crash-pulse analysis: signal processing at a fixed CFC
// followed by every registered metric. A Pipeline is safe to reuse across
// sequential runs; strategies receive their parameters per call and hold no
// run state.
type Pipeline struct {
	cfc        int
	strategies []metrics.Strategy
}

// New builds a pipeline with the SAE J211 default CFC 60.
func New() *Pipeline {
	return NewWithCFC(dsp.DefaultCFC)
}

// NewWithCFC builds a pipeline with an explicit channel frequency class,
// for reprocessing traces outside the standard vehicle-pulse convention.
func NewWithCFC(cfc int) *Pipeline {
	if cfc <= 0 {
		cfc = dsp.DefaultCFC
	}
	return &Pipeline{cfc: cfc}
}

// AddMetric registers a metric strategy. Later strategies win key
// collisions.
func (p *Pipeline) AddMetric(s metrics.Strategy) {
	p.strategies = append(p.strategies, s)
}

// Run processes a cleaned (time, acceleration) trace and evaluates every
// registered metric. vehicleMassKG may be zero when the test mass is
// unknown.
//
// A failing metric never aborts the run: its message is recorded under
// "Error_<Name>" and the remaining metrics still contribute. Only a
// processing failure (e.g. fewer than two samples) is returned as an error.
func (p *Pipeline) Run(timeS, accelG []float64, vehicleMassKG float64) (*model.Result, error) {
	sig, err := dsp.Process(timeS, accelG, p.cfc)
	if err != nil {
		return nil, fmt.Errorf("process signal: %w", err)
	}

	res := &model.Result{
		Signal:  sig,
		Entries: make(map[string]model.Value),
	}
	params := metrics.Params{VehicleMassKG: vehicleMassKG}

	for _, s := range p.strategies {
		vals, err := s.Calculate(sig, params)
		if err != nil {
			log.Printf("[WARN] metric %s failed: %v", s.Name(), err)
			res.Entries[ErrorKeyPrefix+s.Name()] = model.Err(err.Error())
			continue
		}
		for k, v := range vals {
			res.Entries[k] = model.Num(v)
		}
	}

	return res, nil
}
