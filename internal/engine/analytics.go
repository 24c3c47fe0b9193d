package engine

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
)

const (
	secondsPerRep = 3

	// compareDeadBandPct keeps session-to-session noise out of the trend.
	compareDeadBandPct = 5.0
)

type ExerciseVolume struct {
	ExerciseID string
	Name       string
	Volume     float64
	SetCount   int
}

type VolumeReport struct {
	TotalVolume float64
	// PerExercise is sorted by volume, highest first; equal volumes keep
	// session order.
	PerExercise    []ExerciseVolume
	PerMuscleGroup map[domain.MuscleGroup]float64
}

// ComputeVolume sums weight × reps per set. Each exercise's volume counts in
// full toward every muscle group it engages. Exercises missing from the
// catalog still count toward the total but not toward any muscle group.
func ComputeVolume(cat Catalog, session domain.SessionRecord) VolumeReport {
	report := VolumeReport{
		PerExercise:    make([]ExerciseVolume, 0, len(session.Exercises)),
		PerMuscleGroup: make(map[domain.MuscleGroup]float64),
	}

	for _, log := range session.Exercises {
		ev := ExerciseVolume{ExerciseID: log.ExerciseID, Name: log.ExerciseID, SetCount: len(log.Sets)}
		for _, s := range log.Sets {
			ev.Volume += s.Weight * float64(s.Reps)
		}
		report.TotalVolume += ev.Volume

		if ex, ok := lookupExercise(cat, log.ExerciseID); ok {
			ev.Name = ex.Name
			for _, g := range ex.MuscleGroups {
				report.PerMuscleGroup[g] += ev.Volume
			}
		}
		report.PerExercise = append(report.PerExercise, ev)
	}

	sort.SliceStable(report.PerExercise, func(i, j int) bool {
		return report.PerExercise[i].Volume > report.PerExercise[j].Volume
	})
	return report
}

func lookupExercise(cat Catalog, id string) (domain.ExerciseProfile, bool) {
	if cat == nil {
		return domain.ExerciseProfile{}, false
	}
	return cat.Exercise(id)
}

// IntensityBucket is one of the four fixed zones.
type IntensityBucket struct {
	Zone       domain.IntensityZone
	Range      string
	SetCount   int
	Percentage float64
}

type IntensityReport struct {
	Buckets          [4]IntensityBucket
	AverageIntensity float64
	ClassifiedSets   int
	WarmupCount      int
	WorkingCount     int
	HeavyCount       int
	MaxCount         int
}

// ClassifyIntensity places a percent-of-max into its zone:
// warmup ≤35, working (35, 65), heavy [65, 85), max ≥85. Above warmup a
// boundary value belongs to the upper zone.
func ClassifyIntensity(pct float64) domain.IntensityZone {
	switch {
	case pct <= 35:
		return domain.ZoneWarmup
	case pct < 65:
		return domain.ZoneWorking
	case pct < 85:
		return domain.ZoneHeavy
	default:
		return domain.ZoneMax
	}
}

// ComputeIntensity classifies every set against the exercise's four-rep max.
// Sets for exercises with no known max are left out entirely.
func ComputeIntensity(session domain.SessionRecord, maxes map[string]float64) IntensityReport {
	report := IntensityReport{Buckets: [4]IntensityBucket{
		{Zone: domain.ZoneWarmup, Range: "≤35%"},
		{Zone: domain.ZoneWorking, Range: "35-65%"},
		{Zone: domain.ZoneHeavy, Range: "65-85%"},
		{Zone: domain.ZoneMax, Range: ">85%"},
	}}

	var total float64
	for _, log := range session.Exercises {
		m, ok := maxes[log.ExerciseID]
		if !ok || m <= 0 {
			continue
		}
		for _, s := range log.Sets {
			pct := s.Weight / m * 100
			total += pct
			report.ClassifiedSets++

			switch ClassifyIntensity(pct) {
			case domain.ZoneWarmup:
				report.WarmupCount++
			case domain.ZoneWorking:
				report.WorkingCount++
			case domain.ZoneHeavy:
				report.HeavyCount++
			case domain.ZoneMax:
				report.MaxCount++
			}
		}
	}

	report.Buckets[0].SetCount = report.WarmupCount
	report.Buckets[1].SetCount = report.WorkingCount
	report.Buckets[2].SetCount = report.HeavyCount
	report.Buckets[3].SetCount = report.MaxCount
	if report.ClassifiedSets == 0 {
		return report
	}
	for i := range report.Buckets {
		report.Buckets[i].Percentage = float64(report.Buckets[i].SetCount) / float64(report.ClassifiedSets) * 100
	}
	report.AverageIntensity = roundTo(total/float64(report.ClassifiedSets), 1)
	return report
}

type TimeUnderTension struct {
	TotalWorkoutTime int
	TotalRestTime    int
	TotalWorkTime    int
	EstimatedTUT     int
	Efficiency       float64
}

// ComputeTimeUnderTension estimates loaded time at three seconds per rep.
// An incomplete session has zero workout time and zero efficiency. Efficiency
// is not capped; a short logged session can exceed 100.
func ComputeTimeUnderTension(session domain.SessionRecord) TimeUnderTension {
	var tut TimeUnderTension
	if session.CompletedAt != nil && session.CompletedAt.After(session.StartedAt) {
		tut.TotalWorkoutTime = int(session.CompletedAt.Sub(session.StartedAt) / time.Second)
	}
	for _, log := range session.Exercises {
		for _, s := range log.Sets {
			tut.TotalRestTime += s.RestSeconds
			tut.EstimatedTUT += s.Reps * secondsPerRep
		}
	}
	tut.TotalWorkTime = max(0, tut.TotalWorkoutTime-tut.TotalRestTime)
	if tut.TotalWorkoutTime > 0 {
		tut.Efficiency = roundTo(100*float64(tut.EstimatedTUT)/float64(tut.TotalWorkoutTime), 1)
	}
	return tut
}

type WorkoutComparison struct {
	VolumeChange        float64
	VolumeChangePercent float64
	Trend               domain.Trend
	Message             string
}

// CompareToLastWorkout reports the volume change against the previous
// session. A previous volume of zero yields a zero percent change.
func CompareToLastWorkout(cat Catalog, current, previous domain.SessionRecord) WorkoutComparison {
	cur := ComputeVolume(cat, current).TotalVolume
	prev := ComputeVolume(cat, previous).TotalVolume

	cmp := WorkoutComparison{VolumeChange: cur - prev}
	if prev > 0 {
		cmp.VolumeChangePercent = roundTo(cmp.VolumeChange/prev*100, 1)
	}

	switch {
	case cmp.VolumeChangePercent > compareDeadBandPct:
		cmp.Trend = domain.TrendImproving
		cmp.Message = fmt.Sprintf("Great progress! Volume up %d%%.", int(math.Round(cmp.VolumeChangePercent)))
	case cmp.VolumeChangePercent < -compareDeadBandPct:
		cmp.Trend = domain.TrendDeclining
		cmp.Message = "Volume decreased. Consider reviewing your recovery and nutrition."
	default:
		cmp.Trend = domain.TrendStable
		cmp.Message = "Consistent performance. Keep up the good work!"
	}
	return cmp
}

type MuscleGroupShare struct {
	MuscleGroup domain.MuscleGroup
	Volume      float64
	SetCount    int
	Percentage  float64
}

type Imbalance struct {
	MuscleGroup domain.MuscleGroup
	Severity    domain.ImbalanceSeverity
	Message     string
}

type BalanceReport struct {
	Groups          []MuscleGroupShare
	MostWorked      domain.MuscleGroup
	LeastWorked     domain.MuscleGroup
	Imbalances      []Imbalance
	PushPullRatio   float64
	Recommendations []string
}

var (
	pushMuscles = []domain.MuscleGroup{domain.MuscleChest, domain.MuscleShoulders, domain.MuscleTriceps}
	pullMuscles = []domain.MuscleGroup{domain.MuscleBack, domain.MuscleBiceps}
)

// BodyPartBalance compares how much each worked muscle group got relative
// to the session average and checks the push/pull ratio.
func BodyPartBalance(cat Catalog, session domain.SessionRecord) BalanceReport {
	var report BalanceReport
	index := make(map[domain.MuscleGroup]int)
	for _, log := range session.Exercises {
		ex, ok := lookupExercise(cat, log.ExerciseID)
		if !ok {
			continue
		}
		var vol float64
		for _, s := range log.Sets {
			vol += s.Weight * float64(s.Reps)
		}
		for _, g := range ex.MuscleGroups {
			i, seen := index[g]
			if !seen {
				i = len(report.Groups)
				index[g] = i
				report.Groups = append(report.Groups, MuscleGroupShare{MuscleGroup: g})
			}
			report.Groups[i].Volume += vol
			report.Groups[i].SetCount += len(log.Sets)
		}
	}

	if len(report.Groups) == 0 {
		report.Recommendations = []string{"Complete workouts to see muscle balance analysis"}
		return report
	}

	var total float64
	for _, g := range report.Groups {
		total += g.Volume
	}
	for i := range report.Groups {
		if total > 0 {
			report.Groups[i].Percentage = report.Groups[i].Volume / total * 100
		}
	}
	sort.SliceStable(report.Groups, func(i, j int) bool {
		return report.Groups[i].Volume > report.Groups[j].Volume
	})
	report.MostWorked = report.Groups[0].MuscleGroup
	report.LeastWorked = report.Groups[len(report.Groups)-1].MuscleGroup

	report.Imbalances = detectImbalances(report.Groups, total)
	report.PushPullRatio = pushPullRatio(report.Groups)
	report.Recommendations = balanceRecommendations(report.Imbalances, report.PushPullRatio)
	return report
}

func detectImbalances(groups []MuscleGroupShare, total float64) []Imbalance {
	if len(groups) < 2 || total <= 0 {
		return nil
	}
	avg := total / float64(len(groups))

	var out []Imbalance
	for _, g := range groups {
		deviation := (g.Volume - avg) / avg * 100
		below := int(math.Abs(math.Round(deviation)))
		switch {
		case deviation < -40:
			out = append(out, Imbalance{
				MuscleGroup: g.MuscleGroup,
				Severity:    domain.ImbalanceHigh,
				Message:     fmt.Sprintf("%s significantly underworked (%d%% below average)", g.MuscleGroup, below),
			})
		case deviation < -25:
			out = append(out, Imbalance{
				MuscleGroup: g.MuscleGroup,
				Severity:    domain.ImbalanceModerate,
				Message:     fmt.Sprintf("%s somewhat underworked (%d%% below average)", g.MuscleGroup, below),
			})
		}
	}
	return out
}

// pushPullRatio is 1 when no pulling volume was done.
func pushPullRatio(groups []MuscleGroupShare) float64 {
	var push, pull float64
	for _, g := range groups {
		switch {
		case slices.Contains(pushMuscles, g.MuscleGroup):
			push += g.Volume
		case slices.Contains(pullMuscles, g.MuscleGroup):
			pull += g.Volume
		}
	}
	if pull == 0 {
		return 1
	}
	return push / pull
}

func balanceRecommendations(imbalances []Imbalance, ratio float64) []string {
	if len(imbalances) == 0 {
		return []string{"Great balance across all muscle groups!"}
	}

	var recs []string
	var high []string
	for _, im := range imbalances {
		if im.Severity == domain.ImbalanceHigh {
			high = append(high, string(im.MuscleGroup))
		}
	}
	if len(high) > 0 {
		recs = append(recs, "Consider adding more volume for: "+strings.Join(high, ", "))
	}
	recs = append(recs, "Balance improves injury prevention and overall development")

	switch {
	case ratio > 1.3:
		recs = append(recs, "Increase pulling exercises (back, biceps) relative to pushing")
	case ratio < 0.7:
		recs = append(recs, "Increase pushing exercises (chest, shoulders, triceps) relative to pulling")
	}
	return recs
}

type VolumeTrendPoint struct {
	SessionID          string
	Date               time.Time
	TotalVolume        float64
	ChangeFromPrevious float64
	ChangePercent      float64
}

// VolumeTrends orders sessions by completion (start time for unfinished
// ones) and reports each session's volume against the one before it.
func VolumeTrends(cat Catalog, sessions []domain.SessionRecord) []VolumeTrendPoint {
	sorted := make([]domain.SessionRecord, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sessionTime(sorted[i]).Before(sessionTime(sorted[j]))
	})

	out := make([]VolumeTrendPoint, 0, len(sorted))
	var prev float64
	for i, s := range sorted {
		vol := ComputeVolume(cat, s).TotalVolume
		p := VolumeTrendPoint{SessionID: s.ID, Date: sessionTime(s), TotalVolume: vol}
		if i > 0 {
			p.ChangeFromPrevious = vol - prev
			if prev > 0 {
				p.ChangePercent = math.Round(p.ChangeFromPrevious / prev * 100)
			}
		}
		out = append(out, p)
		prev = vol
	}
	return out
}

func sessionTime(s domain.SessionRecord) time.Time {
	if s.CompletedAt != nil {
		return *s.CompletedAt
	}
	return s.StartedAt
}
