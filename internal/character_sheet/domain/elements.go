package domain

// Element identifiers shared with the sheet markup.
const (
	ElemLevel            = "character-level"
	ElemProficiencyBonus = "proficiency-bonus"
	ElemInitiative       = "initiative"
	ElemPortrait         = "character-portrait"

	ElemName       = "character-name"
	ElemAge        = "character-age"
	ElemGender     = "character-gender"
	ElemRace       = "character-race"
	ElemClass      = "character-class"
	ElemBackground = "character-background"

	modSuffix  = "-mod"
	profSuffix = "-prof"
)

func AbilityModID(a Ability) string {
	return string(a) + modSuffix
}

func SkillModID(skill string) string {
	return skill + modSuffix
}

func SkillProfID(skill string) string {
	return skill + profSuffix
}

// FreeFormFields are inputs with no derived values hanging off them
var FreeFormFields = []string{ElemName, ElemAge, ElemGender, ElemRace, ElemClass, ElemBackground}

func IsFreeFormField(id string) bool {
	for _, f := range FreeFormFields {
		if f == id {
			return true
		}
	}
	return false
}
