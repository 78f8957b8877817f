// Package pair validates candidate base pairs and selects the final pair
// list with the legacy greedy mutual-best-match algorithm.
package pair

import "github.com/jyesselm/find-pair-sub002/internal/hbond"

// Config carries every numeric threshold of validation and selection.
// It is immutable for the duration of one analysis run: build it once,
// hand it to the Validator/Finder constructors, never mutate it after.
type Config struct {
	// Origin-distance window (dorg), in angstroms.
	MinDorg float64
	MaxDorg float64
	// MaxDv bounds the out-of-plane (vertical) offset.
	MaxDv float64
	// MaxPlaneAngle bounds the angle between the two base normals, degrees.
	MaxPlaneAngle float64
	// MinDNN is the smallest allowed glycosidic-nitrogen distance.
	MinDNN float64
	// MaxOverlap is the largest allowed projected ring-overlap area;
	// properly paired bases are coplanar and must not stack.
	MaxOverlap float64
	// MinBaseHBonds is the required number of base-base hydrogen bonds.
	MinBaseHBonds int

	// HBond configures the hydrogen-bond detection pipeline.
	HBond hbond.Config

	// GoodHBondMin/Max delimit the distance range of a "good" hydrogen
	// bond for quality-score adjustment.
	GoodHBondMin float64
	GoodHBondMax float64
	// GoodHBondBonus is subtracted from the quality score when at least
	// two good standard bonds are present; WCBonus when the pair
	// classifies as Watson-Crick.
	GoodHBondBonus float64
	WCBonus        float64
}

// DefaultConfig returns the legacy-compatible thresholds.
func DefaultConfig() Config {
	return Config{
		MinDorg:        0,
		MaxDorg:        15.0,
		MaxDv:          2.5,
		MaxPlaneAngle:  65.0,
		MinDNN:         4.5,
		MaxOverlap:     0.01,
		MinBaseHBonds:  1,
		HBond:          hbond.DefaultConfig(),
		GoodHBondMin:   2.5,
		GoodHBondMax:   3.5,
		GoodHBondBonus: 3.0,
		WCBonus:        2.0,
	}
}
