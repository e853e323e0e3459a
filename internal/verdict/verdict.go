// Package verdict applies the fixed multi-predicate decision policy to the
// extracted comparison metrics. The policy is an unweighted logical OR: any
// single triggered predicate fails the comparison. The triggered set is
// retained alongside the binary verdict because it cannot be recovered from
// the verdict alone.
package verdict

import (
	"math"
	"sort"
)

// Flag identifies one failure predicate.
type Flag string

// Failure predicates, evaluated independently.
const (
	// FlagDeadChannel: the current signal is far below the reference
	// level, suggesting no reproduction occurred.
	FlagDeadChannel Flag = "dead_channel"

	// FlagBandLevel: at least one band differs from the reference by more
	// than the band tolerance in either direction.
	FlagBandLevel Flag = "band_level"

	// FlagCrest: the crest-factor difference exceeds tolerance in either
	// direction, indicating altered transient behavior.
	FlagCrest Flag = "crest"

	// FlagSpectralDeviation: the 95th-percentile spectral deviation
	// exceeds tolerance.
	FlagSpectralDeviation Flag = "spectral_deviation"

	// FlagRMSDrop: the overall level dropped below the asymmetric RMS
	// tolerance. A louder current signal never triggers this.
	FlagRMSDrop Flag = "rms_drop"
)

// Thresholds are the decision constants. Defaults must be preserved
// exactly for result compatibility with previously persisted reports.
type Thresholds struct {
	// BandDB is the per-band absolute difference tolerance.
	BandDB float64 `yaml:"band_db"`

	// CrestDB is the absolute crest-difference tolerance.
	CrestDB float64 `yaml:"crest_db"`

	// SpecDev95DB is the spectral-deviation tolerance.
	SpecDev95DB float64 `yaml:"spec_dev95_db"`

	// RMSDropDB is the (negative) RMS difference below which the level
	// drop predicate triggers.
	RMSDropDB float64 `yaml:"rms_drop_db"`

	// DeadChannelDB is how far below the reference RMS the current RMS
	// must fall to flag a dead channel.
	DeadChannelDB float64 `yaml:"dead_channel_db"`
}

// DefaultThresholds returns the canonical decision constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BandDB:        6.0,
		CrestDB:       4.0,
		SpecDev95DB:   12.0,
		RMSDropDB:     -10.0,
		DeadChannelDB: 10.0,
	}
}

// Input carries the metric values the policy evaluates.
type Input struct {
	DiffRMSDB   float64
	DiffCrestDB float64
	BandDiffDB  map[string]float64
	SpecDev95DB float64
	DeadChannel bool
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Passed bool

	// Flags lists every triggered predicate, in a fixed evaluation order.
	Flags []Flag

	// FailedBands names the bands that exceeded the band tolerance,
	// sorted by name. Empty unless FlagBandLevel is present.
	FailedBands []string
}

// Evaluate applies the decision policy to in and returns the verdict with
// the complete triggered-predicate set.
func Evaluate(in Input, thr Thresholds) Decision {
	var d Decision

	if in.DeadChannel {
		d.Flags = append(d.Flags, FlagDeadChannel)
	}
	for name, diff := range in.BandDiffDB {
		if math.Abs(diff) > thr.BandDB {
			d.FailedBands = append(d.FailedBands, name)
		}
	}
	if len(d.FailedBands) > 0 {
		sort.Strings(d.FailedBands)
		d.Flags = append(d.Flags, FlagBandLevel)
	}
	if math.Abs(in.DiffCrestDB) > thr.CrestDB {
		d.Flags = append(d.Flags, FlagCrest)
	}
	if in.SpecDev95DB > thr.SpecDev95DB {
		d.Flags = append(d.Flags, FlagSpectralDeviation)
	}
	if in.DiffRMSDB < thr.RMSDropDB {
		d.Flags = append(d.Flags, FlagRMSDrop)
	}

	d.Passed = len(d.Flags) == 0
	return d
}
