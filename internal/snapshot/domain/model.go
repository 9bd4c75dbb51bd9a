package domain

// Host store key names. They are the contract with the sheet page and must not change.
const (
	KeyGeneratedCharacterImage = "generatedCharacterImage"
	KeyCharacterFormData       = "characterFormData"
)

// Draft is one set of generation parameters as entered in the generator form.
// All fields are free-form; empty strings are allowed.
type Draft struct {
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Species  string `json:"species"`
	Class    string `json:"class"`
	Location string `json:"location"`
	Color    string `json:"color"`
}

// Record holds the raw stored values of both keys. A key that was never
// written is the empty string.
type Record struct {
	GeneratedCharacterImage string `json:"generatedCharacterImage"`
	CharacterFormData       string `json:"characterFormData"`
}

func (r Record) Empty() bool {
	return r.GeneratedCharacterImage == "" && r.CharacterFormData == ""
}

// Snapshot is the decoded view of a Record.
type Snapshot struct {
	Image string `json:"image,omitempty"`
	Draft *Draft `json:"draft,omitempty"`
}
