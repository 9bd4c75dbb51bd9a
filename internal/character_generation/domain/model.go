package domain

import (
	"encoding/json"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/alerting"
)

// Face is the visible side of the generator card.
type Face string

const (
	FaceFront Face = "front" // the form
	FaceBack  Face = "back"  // loading indicator or result
)

// Controls are the result actions shown under a generated portrait.
type Controls struct {
	GenerateAnother     bool `json:"generate_another"`
	SaveImage           bool `json:"save_image"`
	BuildCharacterSheet bool `json:"build_character_sheet"`
}

// ViewState is everything the generator page renders.
type ViewState struct {
	Face         Face            `json:"face"`
	Loading      bool            `json:"loading"`
	Image        string          `json:"image,omitempty"`
	ImageVisible bool            `json:"image_visible"`
	FunFact      string          `json:"fun_fact,omitempty"`
	Controls     Controls        `json:"controls"`
	Alert        *alerting.Alert `json:"alert,omitempty"`
}

// FrontView is the form face with every result element hidden.
func FrontView() ViewState {
	return ViewState{Face: FaceFront}
}

// LoadingView is shown while a generation request is in flight.
func LoadingView(funFact string) ViewState {
	return ViewState{Face: FaceBack, Loading: true, FunFact: funFact}
}

// ResultView shows a generated portrait. Save image stays hidden; only the
// generate-another and build-sheet controls come up on success.
func ResultView(image, funFact string) ViewState {
	return ViewState{
		Face:         FaceBack,
		Image:        image,
		ImageVisible: true,
		FunFact:      funFact,
		Controls: Controls{
			GenerateAnother:     true,
			BuildCharacterSheet: true,
		},
	}
}

// GenerateResult is the image service response. ImageURL wins over Image.
type GenerateResult struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Image    string `json:"image,omitempty"`
}

func (r GenerateResult) Reference() string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return r.Image
}

// ParseGenerateResult reads an image service body. Only a body that is not
// JSON at all is malformed. Any other shape yields a result whose
// Reference is empty unless imageUrl or image holds a string.
func ParseGenerateResult(raw []byte) (GenerateResult, error) {
	if !json.Valid(raw) {
		return GenerateResult{}, ErrMalformedResponse
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return GenerateResult{}, nil
	}
	url, _ := fields["imageUrl"].(string)
	image, _ := fields["image"].(string)
	return GenerateResult{ImageURL: url, Image: image}, nil
}
