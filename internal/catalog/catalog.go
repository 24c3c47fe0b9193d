package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/alexanderramin/trainload/internal/domain"
)

//go:embed exercises.yaml
var defaultCatalogYAML []byte

// ErrInvalidCatalog is returned when a catalog file fails validation.
var ErrInvalidCatalog = errors.New("invalid exercise catalog")

// defaultIncrements holds the per-equipment step used when an entry omits one.
var defaultIncrements = map[domain.Equipment]float64{
	domain.EquipmentDumbbell:   2.5,
	domain.EquipmentBarbell:    5,
	domain.EquipmentMachine:    5,
	domain.EquipmentCable:      5,
	domain.EquipmentBodyweight: 0,
}

// Catalog is the read-only exercise reference. Exercises and variants keep
// the order in which they were authored.
type Catalog struct {
	exercises []domain.ExerciseProfile
	byID      map[string]int
	variants  []domain.Variant
	variantID map[string]int
	links     map[string]domain.EquivalenceLink
	linkOrder []string
}

// New builds a catalog from already-converted records.
func New(exercises []domain.ExerciseProfile, variants []domain.Variant) *Catalog {
	c := &Catalog{
		exercises: exercises,
		byID:      make(map[string]int, len(exercises)),
		variants:  variants,
		variantID: make(map[string]int, len(variants)),
	}
	for i, ex := range exercises {
		c.byID[ex.ID] = i
	}
	for i, v := range variants {
		c.variantID[v.ID] = i
	}
	return c
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// MustDefault is Default for package-level wiring and tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads, validates, and converts a catalog YAML file.
func Load(path string) (*Catalog, error) {
	schema, err := LoadSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return fromSchema(schema)
}

// Parse validates and converts catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, err
	}
	return fromSchema(schema)
}

func fromSchema(schema *CatalogSchema) (*Catalog, error) {
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return Convert(schema), nil
}

// Convert transforms a validated CatalogSchema into a Catalog.
// Call ValidateSchema first; Convert assumes the schema is valid.
func Convert(schema *CatalogSchema) *Catalog {
	exercises := make([]domain.ExerciseProfile, 0, len(schema.Exercises))
	for _, e := range schema.Exercises {
		equipment := domain.Equipment(e.Equipment)
		groups := make([]domain.MuscleGroup, 0, len(e.MuscleGroups))
		for _, g := range e.MuscleGroups {
			groups = append(groups, domain.MuscleGroup(g))
		}
		exercises = append(exercises, domain.ExerciseProfile{
			ID:            e.ID,
			Name:          e.Name,
			PrimaryMuscle: domain.MuscleGroup(e.PrimaryMuscle),
			MuscleGroups:  groups,
			Pattern:       domain.MovementPattern(e.Pattern),
			Equipment:     equipment,
			Increment:     incrementOrDefault(e.Increment, equipment),
		})
	}

	variants := make([]domain.Variant, 0, len(schema.Variants))
	for _, v := range schema.Variants {
		equipment := domain.Equipment(v.Equipment)
		variants = append(variants, domain.Variant{
			ID:             v.ID,
			Name:           v.Name,
			BaseExerciseID: v.Base,
			Equipment:      equipment,
			Ratio:          v.Ratio,
			Increment:      incrementOrDefault(v.Increment, equipment),
		})
	}

	c := New(exercises, variants)
	for _, l := range schema.Links {
		c.addLink(domain.EquivalenceLink{SourceID: l.Source, TargetID: l.Target, Ratio: l.Ratio})
	}
	return c
}

func linkKey(source, target string) string {
	return source + "->" + target
}

func (c *Catalog) addLink(l domain.EquivalenceLink) {
	if c.links == nil {
		c.links = make(map[string]domain.EquivalenceLink)
	}
	key := linkKey(l.SourceID, l.TargetID)
	if _, ok := c.links[key]; !ok {
		c.linkOrder = append(c.linkOrder, key)
	}
	c.links[key] = l
}

func incrementOrDefault(v *float64, equipment domain.Equipment) float64 {
	if v != nil {
		return *v
	}
	return defaultIncrements[equipment]
}

// Exercise looks up an exercise by id.
func (c *Catalog) Exercise(id string) (domain.ExerciseProfile, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.ExerciseProfile{}, false
	}
	return c.exercises[i], true
}

// Variant looks up a variant by id.
func (c *Catalog) Variant(id string) (domain.Variant, bool) {
	i, ok := c.variantID[id]
	if !ok {
		return domain.Variant{}, false
	}
	return c.variants[i], true
}

// VariantsOf returns the authored variants of a base exercise in catalog order.
func (c *Catalog) VariantsOf(exerciseID string) []domain.Variant {
	var out []domain.Variant
	for _, v := range c.variants {
		if v.BaseExerciseID == exerciseID {
			out = append(out, v)
		}
	}
	return out
}

// Exercises returns every exercise in catalog order.
func (c *Catalog) Exercises() []domain.ExerciseProfile {
	out := make([]domain.ExerciseProfile, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Link returns the authored ratio for converting source to target, if any.
// Links are directed: a link for A->B says nothing about B->A.
func (c *Catalog) Link(sourceID, targetID string) (domain.EquivalenceLink, bool) {
	l, ok := c.links[linkKey(sourceID, targetID)]
	return l, ok
}

// Links returns every static equivalence link: one per variant, then the
// authored exercise-to-exercise links in file order.
func (c *Catalog) Links() []domain.EquivalenceLink {
	links := make([]domain.EquivalenceLink, 0, len(c.variants)+len(c.linkOrder))
	for _, v := range c.variants {
		links = append(links, domain.EquivalenceLink{
			SourceID:  v.BaseExerciseID,
			TargetID:  v.BaseExerciseID,
			VariantID: v.ID,
			Ratio:     v.Ratio,
		})
	}
	for _, key := range c.linkOrder {
		links = append(links, c.links[key])
	}
	return links
}
