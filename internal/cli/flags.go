package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/spf13/pflag"
)

// listFlag is a comma-separated, repeatable flag whose entries are checked
// against an allowed set. Entries are lower-cased and de-duplicated.
type listFlag struct {
	kind    string
	allowed func(string) bool
	values  []string
}

var _ pflag.Value = (*listFlag)(nil)

func (f *listFlag) String() string { return strings.Join(f.values, ",") }

func (f *listFlag) Type() string { return f.kind + "s" }

func (f *listFlag) Set(raw string) error {
	for _, part := range strings.Split(raw, ",") {
		v := strings.ToLower(strings.TrimSpace(part))
		if v == "" {
			continue
		}
		if f.allowed != nil && !f.allowed(v) {
			return fmt.Errorf("unknown %s %q", f.kind, v)
		}
		if !slices.Contains(f.values, v) {
			f.values = append(f.values, v)
		}
	}
	return nil
}

func newMuscleFlag() *listFlag {
	return &listFlag{kind: "muscle", allowed: func(s string) bool {
		return slices.Contains(domain.AllMuscleGroups, domain.MuscleGroup(s))
	}}
}

func newPatternFlag() *listFlag {
	return &listFlag{kind: "pattern", allowed: func(s string) bool {
		return domain.ValidMovementPatterns[domain.MovementPattern(s)]
	}}
}

func newEquipmentFlag() *listFlag {
	return &listFlag{kind: "equipment", allowed: func(s string) bool {
		return domain.ValidEquipment[domain.Equipment(s)]
	}}
}

// newIDFlag accepts any non-empty identifiers; the catalog is checked by
// the service layer.
func newIDFlag() *listFlag {
	return &listFlag{kind: "exercise"}
}

func (f *listFlag) muscles() []domain.MuscleGroup {
	out := make([]domain.MuscleGroup, len(f.values))
	for i, v := range f.values {
		out[i] = domain.MuscleGroup(v)
	}
	return out
}

func (f *listFlag) patterns() []domain.MovementPattern {
	out := make([]domain.MovementPattern, len(f.values))
	for i, v := range f.values {
		out[i] = domain.MovementPattern(v)
	}
	return out
}

func (f *listFlag) equipment() []domain.Equipment {
	out := make([]domain.Equipment, len(f.values))
	for i, v := range f.values {
		out[i] = domain.Equipment(v)
	}
	return out
}

// addHoldFlags registers the flags shared by "hold create" and "hold preview".
func addHoldFlags(fs *pflag.FlagSet, muscles, patterns *listFlag, severity *string, weeks *int, defaultWeeks int, reason *string) {
	fs.Var(muscles, "muscles", "Muscle groups on hold (comma-separated)")
	fs.Var(patterns, "patterns", "Movement patterns on hold (comma-separated)")
	fs.StringVar(severity, "severity", string(domain.SeverityModerate), "Injury severity: mild, moderate, severe")
	fs.IntVar(weeks, "weeks", defaultWeeks, "Hold duration in weeks")
	fs.StringVar(reason, "reason", "", "Why the hold was placed")
}

func parseSeverity(s string) (domain.Severity, error) {
	sev := domain.Severity(strings.ToLower(s))
	if !domain.ValidSeverities[sev] {
		return "", fmt.Errorf("unknown severity %q (use mild, moderate or severe)", s)
	}
	return sev, nil
}
