package domain

// Ability is one of the six ability scores. The value doubles as the
// identifier of its input element.
type Ability string

const (
	Strength     Ability = "strength"
	Dexterity    Ability = "dexterity"
	Constitution Ability = "constitution"
	Intelligence Ability = "intelligence"
	Wisdom       Ability = "wisdom"
	Charisma     Ability = "charisma"
)

// Abilities in sheet order
var Abilities = []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// Skill pairs a skill with its governing ability
type Skill struct {
	Name    string  `json:"name"`
	Ability Ability `json:"ability"`
}

// Skills shown on the sheet, in sheet order
var Skills = []Skill{
	{Name: "acrobatics", Ability: Dexterity},
	{Name: "athletics", Ability: Strength},
	{Name: "deception", Ability: Charisma},
	{Name: "history", Ability: Intelligence},
	{Name: "insight", Ability: Wisdom},
	{Name: "intimidation", Ability: Charisma},
	{Name: "investigation", Ability: Intelligence},
	{Name: "medicine", Ability: Wisdom},
	{Name: "nature", Ability: Intelligence},
	{Name: "perception", Ability: Wisdom},
	{Name: "performance", Ability: Charisma},
	{Name: "persuasion", Ability: Charisma},
	{Name: "sleight", Ability: Dexterity},
	{Name: "stealth", Ability: Dexterity},
	{Name: "survival", Ability: Wisdom},
}

func ParseAbility(name string) (Ability, bool) {
	for _, a := range Abilities {
		if string(a) == name {
			return a, true
		}
	}
	return "", false
}

func LookupSkill(name string) (Skill, bool) {
	for _, s := range Skills {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}

// Inputs are the user-entered values the derived stats depend on.
// Scores and Level hold raw field text; parsing happens in stats.
type Inputs struct {
	Scores     map[Ability]string `json:"scores"`
	Level      string             `json:"level"`
	Proficient map[string]bool    `json:"proficient"`
}

// Derived is the full derived stat set for one Inputs value.
type Derived struct {
	AbilityModifiers map[Ability]int `json:"ability_modifiers"`
	ProficiencyBonus int             `json:"proficiency_bonus"`
	Initiative       int             `json:"initiative"`
	SkillModifiers   map[string]int  `json:"skill_modifiers"`
}

// SavedSheet is what the sheet repository persists between page loads:
// every user-editable input field by element id plus the checked skills.
type SavedSheet struct {
	Fields     map[string]string `json:"fields"`
	Proficient map[string]bool   `json:"proficient"`
}
