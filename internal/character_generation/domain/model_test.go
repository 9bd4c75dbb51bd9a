package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateResult_Reference(t *testing.T) {
	assert.Equal(t, "u", GenerateResult{ImageURL: "u", Image: "i"}.Reference())
	assert.Equal(t, "i", GenerateResult{Image: "i"}.Reference())
	assert.Equal(t, "", GenerateResult{}.Reference())
}

func TestViews(t *testing.T) {
	front := FrontView()
	assert.Equal(t, FaceFront, front.Face)
	assert.False(t, front.Loading)
	assert.Equal(t, Controls{}, front.Controls)

	loading := LoadingView("fact")
	assert.Equal(t, FaceBack, loading.Face)
	assert.True(t, loading.Loading)
	assert.False(t, loading.ImageVisible)
	assert.Equal(t, Controls{}, loading.Controls)

	result := ResultView("http://img", "fact")
	assert.False(t, result.Loading)
	assert.True(t, result.ImageVisible)
	assert.Equal(t, Controls{GenerateAnother: true, BuildCharacterSheet: true}, result.Controls)
}

func TestParseGenerateResult(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"image url", `{"imageUrl":"u","image":"i"}`, "u"},
		{"image fallback", `{"image":"i"}`, "i"},
		{"empty url falls back", `{"imageUrl":"","image":"i"}`, "i"},
		{"non-string url falls back", `{"imageUrl":123,"image":"i"}`, "i"},
		{"non-string url", `{"imageUrl":123}`, ""},
		{"array", `[]`, ""},
		{"string", `"oops"`, ""},
		{"number", `42`, ""},
		{"null", `null`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ParseGenerateResult([]byte(tc.body))
			assert.NoError(t, err)
			assert.Equal(t, tc.want, r.Reference())
		})
	}

	_, err := ParseGenerateResult([]byte("<html>"))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
