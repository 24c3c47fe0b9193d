package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

const progressWidth = 20

// FormatRehabStart explains a started rehab block, or why it was refused.
func FormatRehabStart(res *app.StartRehabResult, units string) string {
	var b strings.Builder
	if !res.Appropriateness.Appropriate {
		b.WriteString(StyleRed.Render("Rehab Mode not recommended") + "\n")
		b.WriteString(res.Appropriateness.Warning + "\n")
		if len(res.Appropriateness.Matched) > 0 {
			b.WriteString(Dim("Flagged: "+strings.Join(res.Appropriateness.Matched, ", ")) + "\n")
		}
		return b.String()
	}

	p := res.Plan
	b.WriteString(Header("Rehab Mode") + "\n")
	b.WriteString(fmt.Sprintf("Severity:      %s\n", SeverityStyle(p.Severity).Render(string(p.Severity))))
	b.WriteString(fmt.Sprintf("Load:          -%d%% of pre-injury max\n", p.LoadReductionPct))
	b.WriteString(fmt.Sprintf("Rep range:     %d-%d\n", p.TargetRepMin, p.TargetRepMax))
	b.WriteString(fmt.Sprintf("Pain check-in: %s\n", cadenceLabel(p.Cadence)))
	if p.MaxTestingDisabled {
		b.WriteString(Dim("Max testing is disabled until rehab ends.") + "\n")
	}
	b.WriteString("\n" + FormatRehabStates(res.States, units))
	return b.String()
}

func cadenceLabel(c engine.PainCadence) string {
	switch c {
	case engine.CadenceFirstSet:
		return "after the first set"
	case engine.CadenceFirstTwoSets:
		return "after the first two sets"
	case engine.CadenceEverySet:
		return "after every set"
	default:
		return string(c)
	}
}

func FormatRehabStates(states []*domain.RehabState, units string) string {
	if len(states) == 0 {
		return Dim("No exercises in rehab.") + "\n"
	}
	headers := []string{"EXERCISE", "PRE-INJURY", "CURRENT", "RECOVERY", "SESSIONS"}
	rows := make([][]string, 0, len(states))
	for _, st := range states {
		pct := 0.0
		if st.PreInjuryMax > 0 {
			pct = st.CurrentWeight / st.PreInjuryMax
		}
		rows = append(rows, []string{
			st.ExerciseID,
			FormatWeight(st.PreInjuryMax, units),
			FormatWeight(st.CurrentWeight, units),
			RenderProgress(pct, 10),
			fmt.Sprintf("%d", st.SessionCount),
		})
	}
	return RenderTable(headers, rows)
}

// FormatGateDecision renders the outcome of a pain check-in.
func FormatGateDecision(d engine.GateDecision) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  pain %s", GateIndicator(d.State), PainLevel(d.Level)))
	if d.Previous != nil {
		b.WriteString(Dim(fmt.Sprintf(" (previous %d)", *d.Previous)))
	}
	b.WriteString("\n" + d.Message + "\n")
	if d.ExtraReductionPct > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("Take an extra %d%% off the next set.", d.ExtraReductionPct)) + "\n")
	}
	return b.String()
}

func FormatRehabProgress(p *app.RehabProgress, units string) string {
	var b strings.Builder
	b.WriteString(Header(p.State.ExerciseID) + "\n")
	b.WriteString(fmt.Sprintf("Recovery: %s\n", RenderProgress(p.Recovery.Percent/100, progressWidth)))
	b.WriteString(fmt.Sprintf("Current:  %s of %s\n",
		FormatWeight(p.State.CurrentWeight, units), FormatWeight(p.State.PreInjuryMax, units)))
	b.WriteString(fmt.Sprintf("Sessions: %d\n", p.SessionCount))
	if top, ok := p.Recovery.Highest(); ok {
		b.WriteString(fmt.Sprintf("Milestone: %s\n", StyleGreen.Render(top.Title)))
	}

	for _, m := range p.Recovery.Milestones {
		mark := Dim("○")
		if m.Achieved {
			mark = StyleGreen.Render("●")
		}
		b.WriteString(fmt.Sprintf("  %s %3d%%  %s\n", mark, m.Percent, m.Title))
	}

	b.WriteString("\n")
	if p.Advice.ShouldIncrease {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("Next session: %s (+%s)",
			FormatWeight(p.Advice.NextWeight, units), FormatWeight(p.Advice.IncreaseBy, units))) + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Next session: %s\n", FormatWeight(p.Advice.NextWeight, units)))
	}
	b.WriteString(Dim(p.Advice.Reasoning) + "\n")
	if p.Recovery.ReadyForNormalTraining {
		b.WriteString(StyleGreen.Render("Ready for normal training.") + "\n")
	}
	if p.ReEvaluateIntensity {
		b.WriteString(StyleYellow.Render("Recovery has stalled. Re-evaluate your intensity goals.") + "\n")
	}
	return b.String()
}

func FormatGraduation(r engine.GraduationResult) string {
	if r.CanGraduate {
		s := StyleGreen.Render("Ready to graduate from rehab") + "\n" + r.Reason + "\n"
		if r.NextSteps != "" {
			s += Dim(r.NextSteps) + "\n"
		}
		return s
	}
	return StyleYellow.Render("Not ready to graduate") + "\n" + r.Reason + "\n"
}

// FormatRehabSummary lists per-exercise recovery sorted by exercise ID.
func FormatRehabSummary(s engine.RehabSummary) string {
	var b strings.Builder
	b.WriteString(Header("Rehab Summary") + "\n")
	b.WriteString(fmt.Sprintf("Sessions:      %d\n", s.TotalSessions))
	b.WriteString(fmt.Sprintf("Average pain:  %.1f/10\n", s.AveragePain))
	b.WriteString(fmt.Sprintf("Overall:       %s\n", RenderProgress(s.OverallRecovery/100, progressWidth)))

	ids := make([]string, 0, len(s.Recovery))
	for id := range s.Recovery {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.WriteString(fmt.Sprintf("  %-28s %s\n", id, FormatPct(s.Recovery[id])))
	}
	return b.String()
}

func FormatPainReport(exerciseID string, r engine.PainReport) string {
	var b strings.Builder
	b.WriteString(Header("Pain Report: "+exerciseID) + "\n")
	if r.Trend == domain.PainNoData {
		b.WriteString(Dim("No pain readings recorded.") + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Readings: %d\n", r.SessionCount))
	b.WriteString(fmt.Sprintf("Average:  %.1f/10\n", r.AveragePain))
	if r.LatestPain != nil {
		b.WriteString(fmt.Sprintf("Latest:   %s\n", PainLevel(*r.LatestPain)))
	}
	b.WriteString(fmt.Sprintf("Trend:    %s\n", painTrendLabel(r.Trend)))
	if r.Concerning {
		b.WriteString(StyleRed.Render("Pain pattern is concerning. Review with a professional.") + "\n")
	}
	return b.String()
}

func painTrendLabel(t domain.PainTrend) string {
	switch t {
	case domain.PainImproving:
		return StyleGreen.Render("improving")
	case domain.PainWorsening:
		return StyleRed.Render("worsening")
	default:
		return string(t)
	}
}

func FormatExitAssessment(a engine.ExitAssessment) string {
	if a.CanExit {
		return StyleGreen.Render("Rehab complete") + "\n" + a.Recommendation + "\n"
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render("Still in rehab") + "\n")
	b.WriteString(a.Recommendation + "\n")
	b.WriteString(bullets(a.NotReady))
	return b.String()
}
