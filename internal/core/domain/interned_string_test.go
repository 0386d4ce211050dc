package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fpdgen/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	assert.Equal(t, domain.NewInternedString("IA32"), domain.NewInternedString("IA32"))
	assert.NotEqual(t, domain.NewInternedString("IA32"), domain.NewInternedString("X64"))
	assert.Equal(t, "X64", domain.NewInternedString("X64").String())
	assert.Empty(t, domain.InternedString{}.String())
}
