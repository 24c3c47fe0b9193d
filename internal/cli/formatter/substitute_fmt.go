package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

func FormatSubstitutes(exerciseID string, options []engine.SubstituteOption, units string) string {
	if len(options) == 0 {
		return Dim(fmt.Sprintf("No substitutes known for %s.", exerciseID)) + "\n"
	}
	headers := []string{"#", "SUBSTITUTE", "EQUIPMENT", "RATIO", "ADJUSTED MAX", ""}
	rows := make([][]string, 0, len(options))
	for i, o := range options {
		kind := ""
		if o.IsVariant {
			kind = StylePurple.Render("variant")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			o.Name,
			string(o.Equipment),
			fmt.Sprintf("%.2f", o.Ratio),
			FormatWeight(o.AdjustedMax, units),
			kind,
		})
	}
	return RenderBox("Substitutes for "+exerciseID, RenderTable(headers, rows))
}

func FormatAdjustedWeight(a engine.AdjustedWeight, units string) string {
	target := a.TargetID
	if a.VariantID != "" {
		target = a.VariantID
	}
	source := "equipment estimate"
	if a.Static {
		source = "authored ratio"
	}
	return fmt.Sprintf("%s %s → %s %s\n%s\n",
		a.OriginalID, FormatWeight(a.OriginalWeight, units),
		target, Bold(FormatWeight(a.Weight, units)),
		Dim(fmt.Sprintf("ratio %.2f, %s, rounded to %s", a.Ratio, source, FormatWeight(a.Increment, units))))
}

func FormatSubstitutionCheck(c engine.SubstitutionCheck) string {
	var b strings.Builder
	if c.Valid {
		b.WriteString(StyleGreen.Render("Substitution looks reasonable") + "\n")
	} else {
		b.WriteString(StyleRed.Render("Poor substitute") + "\n")
	}
	if len(c.SharedMuscles) > 0 {
		b.WriteString(fmt.Sprintf("Shared muscles: %s\n", JoinMuscles(c.SharedMuscles)))
	}
	for _, w := range c.Warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	return b.String()
}

func FormatEmergency(o *engine.SubstituteOption, unavailable []domain.Equipment, units string) string {
	if o == nil {
		names := make([]string, len(unavailable))
		for i, e := range unavailable {
			names[i] = string(e)
		}
		return StyleYellow.Render("No substitute available without: "+strings.Join(names, ", ")) + "\n"
	}
	return fmt.Sprintf("Use %s at %s\n%s\n", Bold(o.Name), FormatWeight(o.AdjustedMax, units), Dim(o.Reason))
}
