package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estiloplus-backend/internal/gemini"
)

func TestComposeInstruction_SubstitutesPlaceholders(t *testing.T) {
	template := "Show {user_image} wearing {clothing_image} naturally."

	out := gemini.ComposeInstruction(template)

	assert.Equal(t, "Show the person in the first image wearing the clothing in the second image naturally.", out)
}

func TestComposeInstruction_NoPlaceholders(t *testing.T) {
	template := "Generate a realistic composite of both images."

	assert.Equal(t, template, gemini.ComposeInstruction(template))
}

func TestComposeInstruction_RepeatedPlaceholders(t *testing.T) {
	template := "{user_image} and {user_image} with {clothing_image}"

	out := gemini.ComposeInstruction(template)

	assert.NotContains(t, out, "{user_image}")
	assert.NotContains(t, out, "{clothing_image}")
}
