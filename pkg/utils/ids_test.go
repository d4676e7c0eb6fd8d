package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colony-go/pkg/utils"
)

func TestGenerateID(t *testing.T) {
	a := utils.GenerateID("settler")
	b := utils.GenerateID("settler")

	assert.True(t, strings.HasPrefix(a, "settler-"))
	assert.NotEqual(t, a, b)
}
