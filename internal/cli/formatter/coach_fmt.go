package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

func FormatFlags(flags []domain.CoachingFlag, now time.Time) string {
	if len(flags) == 0 {
		return StyleGreen.Render("No coaching flags.") + "\n"
	}
	headers := []string{"ID", "TYPE", "SEVERITY", "RAISED", "MESSAGE"}
	rows := make([][]string, 0, len(flags))
	for _, f := range flags {
		sev := FlagSeverityStyle(f.Severity).Render(string(f.Severity))
		if f.Acknowledged {
			sev = Dim(string(f.Severity) + " ✔")
		}
		rows = append(rows, []string{
			TruncID(f.ID),
			string(f.Type),
			sev,
			RelativeDays(f.GeneratedAt, now),
			f.Message,
		})
	}
	return RenderBox("Coaching Flags", RenderTable(headers, rows))
}

func FormatSuccessRate(r engine.SuccessRateReport) string {
	if r.TotalAttempts == 0 {
		return Dim("No max attempts in the last 90 days.") + "\n"
	}
	return fmt.Sprintf("Success rate: %s (%d of %d)  trend %s\n",
		Bold(fmt.Sprintf("%d%%", r.SuccessRate)), r.Successful, r.TotalAttempts,
		TrendStyle(r.Trend).Render(string(r.Trend)))
}

func FormatDetraining(d engine.DetrainingResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d days since last workout\n", d.DaysMissed))
	style := StyleGreen
	switch {
	case d.RestartInRehab:
		style = StyleRed
	case d.ReductionPct > 0:
		style = StyleYellow
	}
	b.WriteString(style.Render(d.Recommendation) + "\n")
	if d.DisableMaxTesting {
		b.WriteString(Dim("Max testing is off until you rebuild.") + "\n")
	}
	return b.String()
}

// FormatMaxes renders the latest max per exercise sorted by exercise ID.
func FormatMaxes(maxes map[string]domain.MaxRecord, units string, now time.Time) string {
	if len(maxes) == 0 {
		return Dim("No maxes recorded.") + "\n"
	}
	ids := make([]string, 0, len(maxes))
	for id := range maxes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		m := maxes[id]
		rows = append(rows, []string{id, FormatWeight(m.Weight, units), RelativeDays(m.TestedAt, now)})
	}
	return RenderBox("Four-Rep Maxes", RenderTable([]string{"EXERCISE", "MAX", "TESTED"}, rows))
}

func FormatMaxHistory(records []domain.MaxRecord, units string) string {
	if len(records) == 0 {
		return Dim("No maxes in range.") + "\n"
	}
	var b strings.Builder
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%s  %-28s %s\n", FormatDate(r.TestedAt), r.ExerciseID, FormatWeight(r.Weight, units)))
	}
	return b.String()
}

func FormatCatalog(exercises []domain.ExerciseProfile, units string) string {
	rows := make([][]string, 0, len(exercises))
	for _, ex := range exercises {
		rows = append(rows, []string{
			ex.ID,
			ex.Name,
			JoinMuscles(ex.MuscleGroups),
			string(ex.Pattern),
			string(ex.Equipment),
			FormatWeight(ex.EffectiveIncrement(), units),
		})
	}
	return RenderTable([]string{"ID", "NAME", "MUSCLES", "PATTERN", "EQUIPMENT", "STEP"}, rows)
}

// FormatLinks renders static equivalence links. Variant links show the
// variant in the target column.
func FormatLinks(links []domain.EquivalenceLink) string {
	rows := make([][]string, 0, len(links))
	for _, l := range links {
		target := l.TargetID
		if l.VariantID != "" {
			target = l.VariantID
		}
		rows = append(rows, []string{l.SourceID, target, fmt.Sprintf("%.2f", l.Ratio)})
	}
	return RenderTable([]string{"SOURCE", "TARGET", "RATIO"}, rows)
}
