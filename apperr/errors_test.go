package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyPredicates(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		matches func(error) bool
		others  []func(error) bool
	}{
		{"validation", Validation("amount", "must be at least 1"), IsValidation, []func(error) bool{IsConflict, IsNotFound, IsAuthorization}},
		{"conflict", Conflict("already added"), IsConflict, []func(error) bool{IsValidation, IsNotFound, IsAuthorization}},
		{"not found", NotFound("recipe"), IsNotFound, []func(error) bool{IsValidation, IsConflict, IsAuthorization}},
		{"authorization", Forbidden("not the author"), IsAuthorization, []func(error) bool{IsValidation, IsConflict, IsNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.matches(tt.err))
			for _, other := range tt.others {
				assert.False(t, other(tt.err))
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("listing recipes: %w", NotFound("recipe"))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "tags: at least one tag required", Validation("tags", "at least one tag required").Error())
	assert.Equal(t, "invalid payload", Validation("", "invalid payload").Error())
	assert.Equal(t, "recipe not found", NotFound("recipe").Error())
}
