package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

// FormatHold renders the detail view of a single hold.
func FormatHold(h domain.InjuryHold, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold("Hold"), TruncID(h.ID)))
	b.WriteString(fmt.Sprintf("  Severity:  %s\n", SeverityStyle(h.Severity).Render(string(h.Severity))))
	b.WriteString(fmt.Sprintf("  Muscles:   %s\n", JoinMuscles(h.MuscleGroups)))
	b.WriteString(fmt.Sprintf("  Patterns:  %s\n", JoinPatterns(h.MovementPatterns)))
	b.WriteString(fmt.Sprintf("  Window:    %s → %s (%s)\n", FormatDate(h.StartDate), FormatDate(h.EndDate), RelativeDays(h.EndDate, now)))
	b.WriteString(fmt.Sprintf("  Status:    %s\n", holdStatus(h, now)))
	if h.Reason != "" {
		b.WriteString(fmt.Sprintf("  Reason:    %s\n", h.Reason))
	}
	return b.String()
}

func holdStatus(h domain.InjuryHold, now time.Time) string {
	switch {
	case h.IsActiveAt(now):
		return StyleYellow.Render("● Active")
	case h.IsExpired(now):
		return StyleDim.Render("✔ Expired")
	default:
		return StyleDim.Render("✖ Ended")
	}
}

// FormatHoldList renders holds as a table, newest window first as given.
func FormatHoldList(holds []domain.InjuryHold, now time.Time) string {
	if len(holds) == 0 {
		return Dim("No injury holds.") + "\n"
	}
	headers := []string{"ID", "SEVERITY", "MUSCLES", "PATTERNS", "ENDS", "STATUS"}
	rows := make([][]string, 0, len(holds))
	for _, h := range holds {
		rows = append(rows, []string{
			TruncID(h.ID),
			SeverityStyle(h.Severity).Render(string(h.Severity)),
			JoinMuscles(h.MuscleGroups),
			JoinPatterns(h.MovementPatterns),
			RelativeDays(h.EndDate, now),
			holdStatus(h, now),
		})
	}
	return RenderBox("Injury Holds", RenderTable(headers, rows))
}

func FormatHoldSummary(s engine.HoldSummary, timeline []engine.TimelineEntry) string {
	var b strings.Builder
	b.WriteString(Header("Hold Summary") + "\n")
	if s.TotalActive == 0 {
		b.WriteString(StyleGreen.Render("No active holds. Train as planned.") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Active holds:  %d\n", s.TotalActive))
		b.WriteString(fmt.Sprintf("Muscles:       %s\n", JoinMuscles(s.MuscleGroups)))
		b.WriteString(fmt.Sprintf("Patterns:      %s\n", JoinPatterns(s.Patterns)))
		if s.EarliestEnd != nil && s.DaysUntilResume != nil {
			b.WriteString(fmt.Sprintf("Resume:        %s (%d days)\n", FormatDate(*s.EarliestEnd), *s.DaysUntilResume))
		}
	}
	if len(timeline) == 0 {
		return b.String()
	}

	b.WriteString("\n" + Header("Timeline") + "\n")
	headers := []string{"ID", "START", "END", "WEEKS", "MUSCLES", "ACTIVE"}
	rows := make([][]string, 0, len(timeline))
	for _, e := range timeline {
		active := Dim("no")
		if e.Active {
			active = StyleYellow.Render("yes")
		}
		rows = append(rows, []string{
			TruncID(e.HoldID),
			FormatDate(e.StartDate),
			FormatDate(e.EndDate),
			fmt.Sprintf("%.1f", e.DurationWeeks),
			JoinMuscles(e.MuscleGroups),
			active,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatPlanAdjustment lists what stays in the plan and what a hold removed.
func FormatPlanAdjustment(adj engine.PlanAdjustment) string {
	var b strings.Builder
	b.WriteString(Header("Adjusted Plan") + "\n")
	if len(adj.Allowed) == 0 {
		b.WriteString(StyleRed.Render("Every planned exercise is on hold.") + "\n")
	}
	for _, ex := range adj.Allowed {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleGreen.Render("✔"), ex.Name))
	}
	for _, r := range adj.Removed {
		b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleRed.Render("✖"), r.Exercise.Name, Dim("("+r.Reason+")")))
	}
	return b.String()
}

func FormatHoldImpact(impact engine.HoldImpact) string {
	var b strings.Builder
	b.WriteString(Header("Hold Preview") + "\n")
	b.WriteString(fmt.Sprintf("Affected exercises: %d\n", impact.TotalAffected))
	if len(impact.AffectedIDs) > 0 {
		b.WriteString(bullets(impact.AffectedIDs))
	}
	if impact.CanStillTrain {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("%d exercises remain available.", len(impact.RemainingIDs))) + "\n")
	} else {
		b.WriteString(StyleRed.Render("No planned exercises remain. Consider a rest week.") + "\n")
	}
	return b.String()
}

func FormatAlternatives(alt engine.Alternatives) string {
	var b strings.Builder
	b.WriteString(Header("Train Instead") + "\n")
	b.WriteString(fmt.Sprintf("Available: %s\n", JoinMuscles(alt.CanTrain)))
	b.WriteString(bullets(alt.Suggestions))
	return b.String()
}

// FormatReintegration renders resume weights sorted by exercise ID.
func FormatReintegration(plan engine.ReintegrationPlan, units string) string {
	var b strings.Builder
	b.WriteString(Header("Reintegration") + "\n")
	b.WriteString(fmt.Sprintf("Hold lasted %d days. Resume at %d%% reduction for %d weeks.\n\n",
		plan.HoldDurationDays, plan.ReductionPct, plan.RehabDurationWeeks))

	ids := make([]string, 0, len(plan.StartingWeights))
	for id := range plan.StartingWeights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > 0 {
		rows := make([][]string, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, []string{id, FormatWeight(plan.StartingWeights[id], units)})
		}
		b.WriteString(RenderTable([]string{"EXERCISE", "START AT"}, rows) + "\n")
	}
	for i, p := range plan.Phases {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p))
	}
	return b.String()
}
