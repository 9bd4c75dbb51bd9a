// Package view is the character sheet view-model. It owns the input field
// values and the rendered text of every derived element, and recomputes
// derived elements when an input they depend on changes:
//
//	ability score -> that ability's modifier -> combat stats -> every skill
//	level         -> combat stats -> every skill
//	proficiency   -> that one skill
//
// A Sheet is not safe for concurrent use.
package view

import (
	"fmt"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/stats"
	snapdomain "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
)

// GeneratorPath is where the back control navigates to.
const GeneratorPath = "/"

// Update is the new text of one derived element.
type Update struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Portrait struct {
	Src     string `json:"src,omitempty"`
	Visible bool   `json:"visible"`
}

type Navigation struct {
	Path string `json:"path"`
}

// State is a copy of everything the sheet page renders.
type State struct {
	Fields       map[string]string `json:"fields"`
	Placeholders map[string]string `json:"placeholders,omitempty"`
	Proficient   map[string]bool   `json:"proficient"`
	Display      map[string]string `json:"display"`
	Portrait     Portrait          `json:"portrait"`
}

type Sheet struct {
	fields       map[string]string
	placeholders map[string]string
	proficient   map[string]bool
	display      map[string]string
	portrait     Portrait
}

// NewSheet returns a sheet with default inputs and all derived elements computed.
func NewSheet() *Sheet {
	s := &Sheet{
		fields:       make(map[string]string),
		placeholders: make(map[string]string),
		proficient:   make(map[string]bool),
		display:      make(map[string]string),
	}
	for _, a := range domain.Abilities {
		s.fields[string(a)] = "10"
	}
	s.fields[domain.ElemLevel] = "1"
	for _, f := range domain.FreeFormFields {
		s.fields[f] = ""
	}
	s.recomputeAll()
	return s
}

// Load populates the portrait and draft-derived fields from a persisted
// snapshot. With ok false nothing changes.
func (s *Sheet) Load(snap snapdomain.Snapshot, ok bool) {
	if !ok {
		return
	}

	if snap.Image != "" {
		s.portrait = Portrait{Src: snap.Image, Visible: true}
	}

	d := snap.Draft
	if d == nil {
		return
	}
	setIfPresent := func(id, value string) {
		if value != "" {
			s.fields[id] = value
		}
	}
	setIfPresent(domain.ElemAge, d.Age)
	setIfPresent(domain.ElemGender, d.Gender)
	setIfPresent(domain.ElemRace, d.Species)
	setIfPresent(domain.ElemClass, d.Class)
	setIfPresent(domain.ElemBackground, d.Location)

	if d.Species != "" && d.Class != "" && s.fields[domain.ElemName] == "" {
		s.placeholders[domain.ElemName] = d.Species + " " + d.Class
	}
}

// Restore applies previously saved inputs and recomputes everything.
// Unknown field ids and skills are ignored.
func (s *Sheet) Restore(saved domain.SavedSheet) {
	for id, v := range saved.Fields {
		if _, known := s.fields[id]; known {
			s.fields[id] = v
		}
	}
	for name, checked := range saved.Proficient {
		if _, known := domain.LookupSkill(name); known {
			s.proficient[name] = checked
		}
	}
	s.recomputeAll()
}

// Saved returns the user inputs worth keeping between page loads.
func (s *Sheet) Saved() domain.SavedSheet {
	out := domain.SavedSheet{
		Fields:     make(map[string]string, len(s.fields)),
		Proficient: make(map[string]bool, len(s.proficient)),
	}
	for k, v := range s.fields {
		out.Fields[k] = v
	}
	for k, v := range s.proficient {
		if v {
			out.Proficient[k] = true
		}
	}
	return out
}

// SetAbility stores the raw score text and recomputes its modifier, the
// combat stats and every skill.
func (s *Sheet) SetAbility(a domain.Ability, raw string) ([]Update, error) {
	if _, ok := domain.ParseAbility(string(a)); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAbility, a)
	}
	s.fields[string(a)] = raw

	updates := []Update{s.recomputeAbility(a)}
	updates = append(updates, s.recomputeCombat()...)
	updates = append(updates, s.recomputeSkills()...)
	return updates, nil
}

// SetLevel stores the raw level text and recomputes combat stats and every skill.
func (s *Sheet) SetLevel(raw string) []Update {
	s.fields[domain.ElemLevel] = raw

	updates := s.recomputeCombat()
	return append(updates, s.recomputeSkills()...)
}

// SetProficiency toggles one skill and recomputes only that skill.
func (s *Sheet) SetProficiency(skill string, checked bool) ([]Update, error) {
	sk, ok := domain.LookupSkill(skill)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSkill, skill)
	}
	s.proficient[sk.Name] = checked
	return []Update{s.recomputeSkill(sk)}, nil
}

// SetField stores a free-form field. Nothing depends on these.
func (s *Sheet) SetField(id, value string) error {
	if !domain.IsFreeFormField(id) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownField, id)
	}
	s.fields[id] = value
	return nil
}

// PortraitFailed hides the portrait after the image could not be displayed.
func (s *Sheet) PortraitFailed() {
	s.portrait.Visible = false
}

// BackToGenerator is the navigation side effect of the back control.
func (s *Sheet) BackToGenerator() Navigation {
	return Navigation{Path: GeneratorPath}
}

// Inputs returns the values the derived stats depend on.
func (s *Sheet) Inputs() domain.Inputs {
	in := domain.Inputs{
		Scores:     make(map[domain.Ability]string, len(domain.Abilities)),
		Level:      s.fields[domain.ElemLevel],
		Proficient: make(map[string]bool, len(s.proficient)),
	}
	for _, a := range domain.Abilities {
		in.Scores[a] = s.fields[string(a)]
	}
	for k, v := range s.proficient {
		in.Proficient[k] = v
	}
	return in
}

// Display returns the rendered text of one derived element.
func (s *Sheet) Display(id string) string {
	return s.display[id]
}

func (s *Sheet) State() State {
	st := State{
		Fields:       make(map[string]string, len(s.fields)),
		Placeholders: make(map[string]string, len(s.placeholders)),
		Proficient:   make(map[string]bool, len(domain.Skills)),
		Display:      make(map[string]string, len(s.display)),
		Portrait:     s.portrait,
	}
	for k, v := range s.fields {
		st.Fields[k] = v
	}
	for k, v := range s.placeholders {
		st.Placeholders[k] = v
	}
	for _, sk := range domain.Skills {
		st.Proficient[sk.Name] = s.proficient[sk.Name]
	}
	for k, v := range s.display {
		st.Display[k] = v
	}
	return st
}

func (s *Sheet) abilityModifier(a domain.Ability) int {
	return stats.Modifier(stats.ParseScore(s.fields[string(a)]))
}

func (s *Sheet) proficiencyBonus() int {
	return stats.ProficiencyBonus(stats.ParseLevel(s.fields[domain.ElemLevel]))
}

func (s *Sheet) set(id string, n int) Update {
	u := Update{ID: id, Text: stats.FormatSigned(n)}
	s.display[id] = u.Text
	return u
}

func (s *Sheet) recomputeAbility(a domain.Ability) Update {
	return s.set(domain.AbilityModID(a), s.abilityModifier(a))
}

func (s *Sheet) recomputeCombat() []Update {
	return []Update{
		s.set(domain.ElemProficiencyBonus, s.proficiencyBonus()),
		s.set(domain.ElemInitiative, s.abilityModifier(domain.Dexterity)),
	}
}

func (s *Sheet) recomputeSkill(sk domain.Skill) Update {
	mod := stats.SkillModifier(s.abilityModifier(sk.Ability), s.proficiencyBonus(), s.proficient[sk.Name])
	return s.set(domain.SkillModID(sk.Name), mod)
}

func (s *Sheet) recomputeSkills() []Update {
	updates := make([]Update, 0, len(domain.Skills))
	for _, sk := range domain.Skills {
		updates = append(updates, s.recomputeSkill(sk))
	}
	return updates
}

func (s *Sheet) recomputeAll() {
	for _, a := range domain.Abilities {
		s.recomputeAbility(a)
	}
	s.recomputeCombat()
	s.recomputeSkills()
}
