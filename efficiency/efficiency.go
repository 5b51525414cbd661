// Package efficiency adjusts offensive and defensive ratings for schedule
// strength by fixed-point relaxation.
//
// Each iteration is a pure function of the previous ratings (Step). Solve
// loops it until the largest change in any team's net rating drops below
// Epsilon or MaxIterations is reached. Convergence is not guaranteed for every
// schedule; callers get the last iterate either way and Converged says which.
package efficiency

import (
	"math"
	"sort"

	"github.com/padraicbc/hoopsrank/schedule"
)

// Default solver settings.
const (
	DefaultEpsilon       = 0.01
	DefaultMaxIterations = 100
	DefaultRelaxation    = 0.5
)

// Options configure Solve.
type Options struct {
	Epsilon       float64
	MaxIterations int
	// Relaxation is the weight of the new iterate; 1 is plain Jacobi.
	Relaxation float64
	// HomeCourt is the home edge in points per 100 possessions, applied to
	// the opponent strength a team faced in each game.
	HomeCourt float64
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		Epsilon:       DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
		Relaxation:    DefaultRelaxation,
	}
}

func (o Options) withDefaults() Options {
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Relaxation <= 0 || o.Relaxation > 1 {
		o.Relaxation = DefaultRelaxation
	}
	return o
}

// Opponent is one game on a team's schedule.
type Opponent struct {
	Team     int
	Location schedule.Location
}

// Input is a team's raw season ratings and schedule.
type Input struct {
	Team  int
	ORTG  float64
	DRTG  float64
	Games []Opponent
}

// Rating is a team's adjusted ratings and the strength of schedule behind them.
// OSOS is the mean adjusted defense the offense faced, DSOS the mean adjusted
// offense the defense faced, NSOS the mean opponent net rating.
type Rating struct {
	AdjORTG float64
	AdjDRTG float64
	AdjNet  float64
	OSOS    float64
	DSOS    float64
	NSOS    float64
}

// Ratings maps team id to rating.
type Ratings map[int]Rating

// Schedule is the solver's immutable view of the league.
type Schedule struct {
	inputs  map[int]Input
	ids     []int
	avgORTG float64
	avgDRTG float64
}

// NewSchedule indexes inputs. Games against teams without an input are
// ignored. League averages are weighted by games played so the adjustment
// leaves the league mean unchanged.
func NewSchedule(inputs []Input) *Schedule {
	s := &Schedule{inputs: make(map[int]Input, len(inputs))}
	for _, in := range inputs {
		s.inputs[in.Team] = in
		s.ids = append(s.ids, in.Team)
	}
	sort.Ints(s.ids)

	for _, id := range s.ids {
		in := s.inputs[id]
		kept := in.Games[:0:0]
		for _, g := range in.Games {
			if _, ok := s.inputs[g.Team]; ok {
				kept = append(kept, g)
			}
		}
		in.Games = kept
		s.inputs[id] = in
	}

	var sumO, sumD, weight float64
	for _, id := range s.ids {
		in := s.inputs[id]
		w := float64(len(in.Games))
		sumO += w * in.ORTG
		sumD += w * in.DRTG
		weight += w
	}
	if weight > 0 {
		s.avgORTG = sumO / weight
		s.avgDRTG = sumD / weight
	}
	return s
}

// Averages returns the games-weighted league ORTG and DRTG.
func (s *Schedule) Averages() (ortg, drtg float64) {
	return s.avgORTG, s.avgDRTG
}

// Initial seeds every team's adjusted ratings with its raw ratings.
func (s *Schedule) Initial() Ratings {
	out := make(Ratings, len(s.ids))
	for _, id := range s.ids {
		in := s.inputs[id]
		out[id] = Rating{
			AdjORTG: in.ORTG,
			AdjDRTG: in.DRTG,
			AdjNet:  in.ORTG - in.DRTG,
			OSOS:    s.avgDRTG,
			DSOS:    s.avgORTG,
		}
	}
	return out
}

// Step computes one relaxation pass from prev without modifying it.
func (s *Schedule) Step(prev Ratings, relaxation, homeCourt float64) Ratings {
	next := make(Ratings, len(s.ids))
	for _, id := range s.ids {
		in := s.inputs[id]
		cur := prev[id]
		if len(in.Games) == 0 {
			next[id] = Rating{
				AdjORTG: in.ORTG,
				AdjDRTG: in.DRTG,
				AdjNet:  in.ORTG - in.DRTG,
				OSOS:    s.avgDRTG,
				DSOS:    s.avgORTG,
			}
			continue
		}

		var osos, dsos, nsos float64
		for _, g := range in.Games {
			opp := prev[g.Team]
			edge := homeCourt * side(g.Location)
			osos += opp.AdjDRTG + edge
			dsos += opp.AdjORTG - edge
			nsos += opp.AdjNet
		}
		n := float64(len(in.Games))
		osos /= n
		dsos /= n
		nsos /= n

		targetO := in.ORTG + (s.avgDRTG - osos)
		targetD := in.DRTG + (s.avgORTG - dsos)
		adjO := cur.AdjORTG + relaxation*(targetO-cur.AdjORTG)
		adjD := cur.AdjDRTG + relaxation*(targetD-cur.AdjDRTG)

		next[id] = Rating{
			AdjORTG: adjO,
			AdjDRTG: adjD,
			AdjNet:  adjO - adjD,
			OSOS:    osos,
			DSOS:    dsos,
			NSOS:    nsos,
		}
	}
	return next
}

// side is +1 at home, -1 away and 0 on a neutral floor.
func side(l schedule.Location) float64 {
	switch l {
	case schedule.Home:
		return 1
	case schedule.Away:
		return -1
	}
	return 0
}

// MaxNetDelta is the largest absolute AdjNet change between a and b.
func MaxNetDelta(a, b Ratings) float64 {
	var largest float64
	for id, rb := range b {
		if d := math.Abs(rb.AdjNet - a[id].AdjNet); d > largest {
			largest = d
		}
	}
	return largest
}

// Result is the solver output.
type Result struct {
	Ratings    Ratings
	Iterations int
	Converged  bool
	MaxDelta   float64
	AvgORTG    float64
	AvgDRTG    float64
}

// Solve iterates Step from the raw ratings until convergence or the cap.
func Solve(inputs []Input, opts Options) Result {
	opts = opts.withDefaults()
	s := NewSchedule(inputs)
	res := Result{Ratings: s.Initial()}
	res.AvgORTG, res.AvgDRTG = s.Averages()

	for res.Iterations < opts.MaxIterations {
		next := s.Step(res.Ratings, opts.Relaxation, opts.HomeCourt)
		res.Iterations++
		res.MaxDelta = MaxNetDelta(res.Ratings, next)
		res.Ratings = next
		if res.MaxDelta < opts.Epsilon {
			res.Converged = true
			break
		}
	}
	return res
}
