package domain

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ValidSeverities is the canonical set of accepted injury severities.
var ValidSeverities = map[Severity]bool{
	SeverityMild: true, SeverityModerate: true, SeveritySevere: true,
}

type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
)

// ValidEquipment is the canonical set of accepted equipment categories.
var ValidEquipment = map[Equipment]bool{
	EquipmentBarbell: true, EquipmentDumbbell: true, EquipmentMachine: true, EquipmentCable: true, EquipmentBodyweight: true,
}

type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleLegs      MuscleGroup = "legs"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleCore      MuscleGroup = "core"
)

// AllMuscleGroups lists every muscle group in display order.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleLegs, MuscleShoulders, MuscleBiceps, MuscleTriceps, MuscleCore,
}

type MovementPattern string

const (
	PatternPush  MovementPattern = "push"
	PatternPull  MovementPattern = "pull"
	PatternSquat MovementPattern = "squat"
	PatternHinge MovementPattern = "hinge"
)

// ValidMovementPatterns is the canonical set of accepted movement pattern strings.
var ValidMovementPatterns = map[MovementPattern]bool{
	PatternPush: true, PatternPull: true, PatternSquat: true, PatternHinge: true,
}

// GateState is the outcome of a pain check-in evaluated after a completed set.
type GateState string

const (
	GateContinue            GateState = "continue"
	GateContinueWithCaution GateState = "continue_with_caution"
	GateStop                GateState = "stop"
)

type FlagType string

const (
	FlagPlateau          FlagType = "plateau"
	FlagOvertrainingRisk FlagType = "overtraining_risk"
	FlagFatigue          FlagType = "fatigue"
	FlagInjuryConcern    FlagType = "injury_concern"
)

type FlagSeverity string

const (
	FlagLow    FlagSeverity = "low"
	FlagMedium FlagSeverity = "medium"
	FlagHigh   FlagSeverity = "high"
)

// Trend describes the direction of a performance metric.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

type PainTrend string

const (
	PainImproving PainTrend = "improving"
	PainStable    PainTrend = "stable"
	PainWorsening PainTrend = "worsening"
	PainNoData    PainTrend = "no_data"
)

type MissedReason string

const (
	MissedInjury          MissedReason = "injury"
	MissedNoGymAccess     MissedReason = "no_gym_access"
	MissedTimeConstraints MissedReason = "time_constraints"
	MissedOther           MissedReason = "other"
)

// ValidMissedReasons is the canonical set of accepted missed-session reasons.
var ValidMissedReasons = map[MissedReason]bool{
	MissedInjury: true, MissedNoGymAccess: true, MissedTimeConstraints: true, MissedOther: true,
}

type Protocol string

const (
	ProtocolP1 Protocol = "P1"
	ProtocolP2 Protocol = "P2"
	ProtocolP3 Protocol = "P3"
)

// ValidProtocols is the canonical set of accepted training protocols.
var ValidProtocols = map[Protocol]bool{
	ProtocolP1: true, ProtocolP2: true, ProtocolP3: true,
}

// FormAlert is the severity of a pre-set form check prompt.
type FormAlert string

const (
	FormAlertNone     FormAlert = "none"
	FormAlertWarning  FormAlert = "warning"
	FormAlertCritical FormAlert = "critical"
)

type ImbalanceSeverity string

const (
	ImbalanceModerate ImbalanceSeverity = "moderate"
	ImbalanceHigh     ImbalanceSeverity = "high"
)

// IntensityZone names one of the four fixed intensity buckets.
type IntensityZone string

const (
	ZoneWarmup  IntensityZone = "warmup"
	ZoneWorking IntensityZone = "working"
	ZoneHeavy   IntensityZone = "heavy"
	ZoneMax     IntensityZone = "max"
)
