// Package bracket projects opening-round pods from the RPI order.
//
// The top 64 ranked teams are split into four seed tiers of 16. Every tier-1
// team hosts a pod. Visitors are placed greedily, best seed first, at the
// nearest host that still has a free slot and no team from the visitor's
// conference. When no such host is left the conference rule is dropped for
// that visitor and the slot is marked Relaxed. Equal distances go to the
// better-seeded host.
package bracket

import (
	"errors"
	"fmt"
	"math"

	"github.com/padraicbc/hoopsrank/schedule"
)

const (
	TierSize    = 16
	TierCount   = 4
	PodVisitors = 3

	earthRadiusMiles = 3958.8
)

// ErrMissingLocation means a seeded team has no home coordinate.
var ErrMissingLocation = errors.New("team has no location")

// Seed is a ranked team entering the projection.
type Seed struct {
	Team schedule.Team
	Rank int
}

// Tier is one seed line.
type Tier struct {
	Number int
	Seeds  []Seed
}

// Slot is a visitor position in a pod. A nil Visitor is an empty slot.
type Slot struct {
	Visitor  *Seed
	Tier     int
	Distance float64
	Relaxed  bool
}

// Pod is one host and its visitor slots.
type Pod struct {
	Host  Seed
	Slots [PodVisitors]Slot
}

// Filled is the number of occupied slots.
func (p *Pod) Filled() int {
	n := 0
	for _, s := range p.Slots {
		if s.Visitor != nil {
			n++
		}
	}
	return n
}

func (p *Pod) hasConference(conf string) bool {
	if conf == "" {
		return false
	}
	if p.Host.Team.Conference == conf {
		return true
	}
	for _, s := range p.Slots {
		if s.Visitor != nil && s.Visitor.Team.Conference == conf {
			return true
		}
	}
	return false
}

// Projection is the seeded field and its pods, pods in host seed order.
type Projection struct {
	Tiers []Tier
	Pods  []Pod
}

// Haversine returns the great-circle distance between a and b in miles.
func Haversine(a, b schedule.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Project seeds the field. seeds must be sorted by Rank ascending; only the
// first TierCount*TierSize are used.
func Project(seeds []Seed) (Projection, error) {
	if n := TierCount * TierSize; len(seeds) > n {
		seeds = seeds[:n]
	}
	for _, s := range seeds {
		if s.Team.Home == nil {
			return Projection{}, fmt.Errorf("%w: %s (%d)", ErrMissingLocation, s.Team.Name, s.Team.ID)
		}
	}

	var p Projection
	for i := 0; i*TierSize < len(seeds); i++ {
		end := min((i+1)*TierSize, len(seeds))
		p.Tiers = append(p.Tiers, Tier{Number: i + 1, Seeds: seeds[i*TierSize : end]})
	}
	if len(p.Tiers) == 0 {
		return p, nil
	}

	p.Pods = make([]Pod, len(p.Tiers[0].Seeds))
	for i, host := range p.Tiers[0].Seeds {
		p.Pods[i].Host = host
	}

	for _, tier := range p.Tiers[1:] {
		for i := range tier.Seeds {
			v := &tier.Seeds[i]
			idx, relaxed := nearestHost(p.Pods, v)
			if idx < 0 {
				return p, fmt.Errorf("no pod capacity left for %s (%d)", v.Team.Name, v.Team.ID)
			}
			pod := &p.Pods[idx]
			pod.Slots[pod.Filled()] = Slot{
				Visitor:  v,
				Tier:     tier.Number,
				Distance: Haversine(*v.Team.Home, *pod.Host.Team.Home),
				Relaxed:  relaxed,
			}
		}
	}
	return p, nil
}

// nearestHost returns the pod index for v and whether the conference rule
// had to be relaxed. It returns -1 when every pod is full.
func nearestHost(pods []Pod, v *Seed) (int, bool) {
	best, fallback := -1, -1
	bestDist, fallbackDist := math.Inf(1), math.Inf(1)
	for i := range pods {
		pod := &pods[i]
		if pod.Filled() >= PodVisitors {
			continue
		}
		d := Haversine(*v.Team.Home, *pod.Host.Team.Home)
		// pods are in host seed order, so strict < keeps the better seed on ties
		if d < fallbackDist {
			fallback, fallbackDist = i, d
		}
		if !pod.hasConference(v.Team.Conference) && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return best, false
	}
	return fallback, fallback >= 0
}
