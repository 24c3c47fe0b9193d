package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

func FormatVolume(r engine.VolumeReport, units string) string {
	var b strings.Builder
	b.WriteString(Header("Volume") + "\n")
	b.WriteString(fmt.Sprintf("Total: %s\n\n", Bold(FormatWeight(r.TotalVolume, units))))

	rows := make([][]string, 0, len(r.PerExercise))
	for _, ev := range r.PerExercise {
		rows = append(rows, []string{ev.Name, fmt.Sprintf("%d", ev.SetCount), FormatWeight(ev.Volume, units)})
	}
	b.WriteString(RenderTable([]string{"EXERCISE", "SETS", "VOLUME"}, rows))

	if len(r.PerMuscleGroup) > 0 {
		b.WriteString("\n")
		for _, g := range domain.AllMuscleGroups {
			if v, ok := r.PerMuscleGroup[g]; ok {
				b.WriteString(fmt.Sprintf("  %-10s %s\n", g, FormatWeight(v, units)))
			}
		}
	}
	return b.String()
}

func FormatIntensity(r engine.IntensityReport) string {
	var b strings.Builder
	b.WriteString(Header("Intensity") + "\n")
	if r.ClassifiedSets == 0 {
		b.WriteString(Dim("No sets with a recorded max to classify.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(r.Buckets))
	for _, bucket := range r.Buckets {
		rows = append(rows, []string{
			string(bucket.Zone),
			bucket.Range,
			fmt.Sprintf("%d", bucket.SetCount),
			FormatPct(bucket.Percentage),
		})
	}
	b.WriteString(RenderTable([]string{"ZONE", "RANGE", "SETS", "SHARE"}, rows))
	b.WriteString(fmt.Sprintf("\nAverage intensity: %.1f%% of max\n", r.AverageIntensity))
	return b.String()
}

func FormatTimeUnderTension(t engine.TimeUnderTension) string {
	var b strings.Builder
	b.WriteString(Header("Time Under Tension") + "\n")
	b.WriteString(fmt.Sprintf("Workout:    %s\n", formatSeconds(t.TotalWorkoutTime)))
	b.WriteString(fmt.Sprintf("Rest:       %s\n", formatSeconds(t.TotalRestTime)))
	b.WriteString(fmt.Sprintf("Work:       %s\n", formatSeconds(t.TotalWorkTime)))
	b.WriteString(fmt.Sprintf("Est. TUT:   %s\n", formatSeconds(t.EstimatedTUT)))
	b.WriteString(fmt.Sprintf("Efficiency: %.1f%%\n", t.Efficiency))
	return b.String()
}

func formatSeconds(sec int) string {
	if sec <= 0 {
		return "0s"
	}
	m, s := sec/60, sec%60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

func FormatBalance(r engine.BalanceReport) string {
	var b strings.Builder
	b.WriteString(Header("Muscle Balance") + "\n")
	if len(r.Groups) == 0 {
		b.WriteString(Dim("No volume recorded.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(r.Groups))
	for _, g := range r.Groups {
		rows = append(rows, []string{string(g.MuscleGroup), fmt.Sprintf("%d", g.SetCount), FormatPct(g.Percentage)})
	}
	b.WriteString(RenderTable([]string{"MUSCLE", "SETS", "SHARE"}, rows))
	b.WriteString(fmt.Sprintf("\nMost worked:  %s\nLeast worked: %s\nPush:pull:    %.2f\n", r.MostWorked, r.LeastWorked, r.PushPullRatio))
	for _, im := range r.Imbalances {
		style := StyleYellow
		if im.Severity == domain.ImbalanceHigh {
			style = StyleRed
		}
		b.WriteString(style.Render("! "+im.Message) + "\n")
	}
	if len(r.Recommendations) > 0 {
		b.WriteString(bullets(r.Recommendations))
	}
	return b.String()
}

func FormatComparison(c engine.WorkoutComparison, units string) string {
	sign := ""
	if c.VolumeChange > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s  %s%s (%s%.1f%%)\n%s\n",
		TrendStyle(c.Trend).Render(strings.ToUpper(string(c.Trend))),
		sign, FormatWeight(c.VolumeChange, units), sign, c.VolumeChangePercent,
		c.Message)
}

func FormatTrends(points []engine.VolumeTrendPoint, units string) string {
	if len(points) == 0 {
		return Dim("No workouts logged.") + "\n"
	}
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		change := Dim("--")
		if i > 0 {
			change = fmt.Sprintf("%+.0f%%", p.ChangePercent)
		}
		rows = append(rows, []string{FormatDate(p.Date), FormatWeight(p.TotalVolume, units), change})
	}
	return RenderBox("Volume Trend", RenderTable([]string{"DATE", "VOLUME", "CHANGE"}, rows))
}

func FormatFormCheck(r app.FormCheckResult, units string) string {
	var b strings.Builder
	b.WriteString(Header("Form check: "+r.ExerciseID) + "\n")

	switch r.Prompt.Alert {
	case domain.FormAlertCritical:
		b.WriteString(StyleRed.Render("● "+r.Prompt.Details) + "\n")
	case domain.FormAlertWarning:
		b.WriteString(StyleYellow.Render("● "+r.Prompt.Details) + "\n")
	default:
		b.WriteString(StyleGreen.Render(fmt.Sprintf("● %s looks fine for the next set.", FormatWeight(r.NextWeight, units))) + "\n")
	}
	if r.Review && r.Prompt.Alert == domain.FormAlertNone {
		b.WriteString(StyleYellow.Render(r.ReviewReason) + "\n")
	}

	if r.Stats.TotalSets > 0 {
		b.WriteString(fmt.Sprintf("\nLast %d sets: %s success, avg %s, trend %s\n",
			r.Stats.TotalSets, FormatPct(r.Stats.SuccessRate), FormatWeight(r.Stats.AverageWeight, units),
			TrendStyle(r.Stats.Trend).Render(string(r.Stats.Trend))))
	} else {
		b.WriteString(Dim("No logged sets for this exercise yet.") + "\n")
	}
	b.WriteString(bullets(r.Tips))
	return b.String()
}
