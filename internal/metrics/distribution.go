package metrics

import (
	"math"

	"github.com/kihw/draftlens/internal/mathkernel"
	"github.com/kihw/draftlens/internal/role"
)

// distStat is a role's population mean/std for one named metric.
type distStat struct {
	Mean float64
	Std  float64
}

// roleCollector gathers the raw population for every named metric
// within one role, before any snapshot is z-scored against it.
type roleCollector struct {
	values  map[string][]float64
	weights map[string][]float64
}

func newRoleCollector() *roleCollector {
	return &roleCollector{
		values:  make(map[string][]float64),
		weights: make(map[string][]float64),
	}
}

// add records one observation of metric under weight w. Passing w<=0
// is treated as a unit weight; only wrAdj carries a real sample-size
// weight, every other metric population is unweighted.
func (c *roleCollector) add(metric string, v, w float64) {
	if w <= 0 {
		w = 1
	}
	c.values[metric] = append(c.values[metric], v)
	c.weights[metric] = append(c.weights[metric], w)
}

// compile reduces every collected metric population to its weighted
// mean/variance, flooring variance so a z-score never divides by a
// near-zero standard deviation.
func (c *roleCollector) compile() map[string]distStat {
	out := make(map[string]distStat, len(c.values))
	for metric, vs := range c.values {
		mean, variance := mathkernel.WeightedMeanVariance(vs, c.weights[metric])
		out[metric] = distStat{Mean: mean, Std: sqrtFloor(variance)}
	}
	return out
}

func sqrtFloor(variance float64) float64 {
	if variance < 1e-6 {
		variance = 1e-6
	}
	return math.Sqrt(variance)
}

// roleDistributions is keyed by role id; each entry is that role's
// compiled metric->distStat map.
type roleDistributions [role.NumRoles]map[string]distStat

func buildRoleDistributions(snaps []rawSnapshot) roleDistributions {
	collectors := [role.NumRoles]*roleCollector{}
	for i := range collectors {
		collectors[i] = newRoleCollector()
	}

	for _, s := range snaps {
		c := collectors[s.Role]
		c.add("wrAdj", s.WrAdj, float64(s.Games))
		c.add("plates", s.PlatesPerGame, 0)
		c.add("firstTower", s.FirstTowerRate, 0)
		c.add("heraldGrubs", s.HeraldGrubsPerGame, 0)
		c.add("dragon", s.DragonPerGame, 0)
		c.add("dpm", s.DPM, 0)
		c.add("kp", s.KP, 0)
		c.add("mitigationPm", s.DamageMitigatedPM, 0)
		c.add("visionPm", s.VisionPM, 0)
		c.add("scalingGold", s.ScalingGold, 0)
		c.add("scalingXp", s.ScalingXp, 0)
		c.add("baronAtakhan", s.BaronAtakhanPerGame, 0)
		c.add("deathsPm", s.DeathsPM, 0)
		c.add("laneMean15", s.LaneMean15, 0)
		c.add("laneStd15", s.LaneStd15, 0)
		c.add("frontline", s.Frontline, 0)
	}

	var out roleDistributions
	for i := range collectors {
		out[i] = collectors[i].compile()
	}
	return out
}

func (d roleDistributions) stat(r role.Role, metric string) distStat {
	if m := d[r]; m != nil {
		if s, ok := m[metric]; ok {
			return s
		}
	}
	return distStat{Mean: 0, Std: 1e-3}
}
