// Package stats holds the derived-stat arithmetic of the character sheet.
// Everything here is a pure function of its inputs.
package stats

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
)

const (
	DefaultScore = 10
	DefaultLevel = 1
)

// Modifier returns floor((score-10)/2).
func Modifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus returns ceil(level/4)+1.
func ProficiencyBonus(level int) int {
	return ceilDiv(level, 4) + 1
}

// ParseScore reads an ability score field. Empty, non-numeric and zero
// values count as the default score of 10.
func ParseScore(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n == 0 {
		return DefaultScore
	}
	return n
}

// ParseLevel reads the level field. Empty, non-numeric and zero values count as level 1.
func ParseLevel(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n == 0 {
		return DefaultLevel
	}
	return n
}

// FormatSigned renders n with an explicit + for zero and positive values.
func FormatSigned(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Compute derives the full stat set from in. Missing scores use the default.
func Compute(in domain.Inputs) domain.Derived {
	out := domain.Derived{
		AbilityModifiers: make(map[domain.Ability]int, len(domain.Abilities)),
		SkillModifiers:   make(map[string]int, len(domain.Skills)),
	}

	for _, a := range domain.Abilities {
		out.AbilityModifiers[a] = Modifier(ParseScore(in.Scores[a]))
	}

	out.ProficiencyBonus = ProficiencyBonus(ParseLevel(in.Level))
	out.Initiative = out.AbilityModifiers[domain.Dexterity]

	for _, s := range domain.Skills {
		out.SkillModifiers[s.Name] = SkillModifier(out.AbilityModifiers[s.Ability], out.ProficiencyBonus, in.Proficient[s.Name])
	}

	return out
}

// SkillModifier adds the proficiency bonus to the governing ability modifier when proficient.
func SkillModifier(abilityMod, proficiencyBonus int, proficient bool) int {
	if proficient {
		return abilityMod + proficiencyBonus
	}
	return abilityMod
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores anything that follows ("14abc" is 14).
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
