package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Usserslalo/delixmi-backend-sub003/pkg/apperr"
	"github.com/Usserslalo/delixmi-backend-sub003/repository"
)

// catalog fixture: group 10 "Size" (required, pick exactly one, options 101/102)
// and group 20 "Toppings" (optional, up to two, options 201/202/203).
func testGroups() []repository.CatalogGroup {
	return []repository.CatalogGroup{
		{
			GroupID: 10, Name: "Size", MinSelect: 1, MaxSelect: 1,
			Options: []repository.CatalogOption{
				{OptionID: 101, GroupID: 10, PriceDelta: d("0.00")},
				{OptionID: 102, GroupID: 10, PriceDelta: d("5.00")},
			},
		},
		{
			GroupID: 20, Name: "Toppings", MinSelect: 0, MaxSelect: 2,
			Options: []repository.CatalogOption{
				{OptionID: 201, GroupID: 20, PriceDelta: d("25.50")},
				{OptionID: 202, GroupID: 20, PriceDelta: d("18.00")},
				{OptionID: 203, GroupID: 20, PriceDelta: d("12.00")},
			},
		},
	}
}

func validationErr(t *testing.T, err error) *apperr.Error {
	t.Helper()
	require.Error(t, err)
	ae := apperr.From(err)
	require.Equal(t, apperr.KindValidationFailed, ae.Kind)
	return ae
}

func TestValidateSelectionsHappyPath(t *testing.T) {
	resolved, err := ValidateSelections(testGroups(), []SelectionIn{
		{GroupID: 10, OptionID: 102},
		{GroupID: 20, OptionID: 201},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, uint(102), resolved[0].OptionID)
	assert.Equal(t, "5.00", resolved[0].PriceDelta.StringFixed(2))
	assert.Equal(t, "25.50", resolved[1].PriceDelta.StringFixed(2))
}

func TestValidateSelectionsUnknownGroup(t *testing.T) {
	_, err := ValidateSelections(testGroups(), []SelectionIn{
		{GroupID: 10, OptionID: 101},
		{GroupID: 99, OptionID: 101},
	})
	ae := validationErr(t, err)
	assert.Equal(t, apperr.CodeInvalidModifierGroup, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, uint(99), ae.Details[0].GroupID)
}

func TestValidateSelectionsUnknownOption(t *testing.T) {
	_, err := ValidateSelections(testGroups(), []SelectionIn{
		{GroupID: 10, OptionID: 999},
	})
	ae := validationErr(t, err)
	assert.Equal(t, apperr.CodeInvalidModifierOption, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, uint(999), ae.Details[0].OptionID)
}

// A cross-wired request names a real option under the wrong group; the
// diagnostic must carry expected vs actual.
func TestValidateSelectionsGroupMismatch(t *testing.T) {
	_, err := ValidateSelections(testGroups(), []SelectionIn{
		{GroupID: 10, OptionID: 101},
		{GroupID: 10, OptionID: 201},
	})
	ae := validationErr(t, err)
	assert.Equal(t, apperr.CodeModifierGroupMismatch, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, uint(20), ae.Details[0].ExpectedGroup)
	assert.Equal(t, uint(10), ae.Details[0].ActualGroup)
	assert.Equal(t, uint(201), ae.Details[0].OptionID)
}

// Required group, pick exactly one: zero picks and two picks both reject,
// naming exactly that group.
func TestValidateSelectionsRequiredGroupBounds(t *testing.T) {
	t.Run("none selected", func(t *testing.T) {
		_, err := ValidateSelections(testGroups(), nil)
		ae := validationErr(t, err)
		assert.Equal(t, apperr.CodeModifiersRequired, ae.Code)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, uint(10), ae.Details[0].GroupID)
		assert.Equal(t, 1, ae.Details[0].MinSelect)
		assert.Equal(t, 1, ae.Details[0].MaxSelect)
		assert.Equal(t, 0, ae.Details[0].Selected)
	})

	t.Run("both selected", func(t *testing.T) {
		_, err := ValidateSelections(testGroups(), []SelectionIn{
			{GroupID: 10, OptionID: 101},
			{GroupID: 10, OptionID: 102},
		})
		ae := validationErr(t, err)
		assert.Equal(t, apperr.CodeInvalidSelection, ae.Code)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, uint(10), ae.Details[0].GroupID)
		assert.Equal(t, 2, ae.Details[0].Selected)
	})
}

// All violating groups come back together, not one per round trip.
func TestValidateSelectionsAccumulatesCardinality(t *testing.T) {
	_, err := ValidateSelections(testGroups(), []SelectionIn{
		{GroupID: 20, OptionID: 201},
		{GroupID: 20, OptionID: 202},
		{GroupID: 20, OptionID: 203},
	})
	ae := validationErr(t, err)
	// Size under-selected and Toppings over-selected in the same response
	assert.Equal(t, apperr.CodeModifiersRequired, ae.Code)
	require.Len(t, ae.Details, 2)
	codes := []string{ae.Details[0].Code, ae.Details[1].Code}
	assert.Contains(t, codes, apperr.CodeModifiersRequired)
	assert.Contains(t, codes, apperr.CodeInvalidSelection)
}

// An optional group still cannot exceed its max.
func TestValidateSelectionsOptionalGroupOverMax(t *testing.T) {
	_, err := ValidateSelections(testGroups(), []SelectionIn{
		{GroupID: 10, OptionID: 101},
		{GroupID: 20, OptionID: 201},
		{GroupID: 20, OptionID: 202},
		{GroupID: 20, OptionID: 203},
	})
	ae := validationErr(t, err)
	assert.Equal(t, apperr.CodeInvalidSelection, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, uint(20), ae.Details[0].GroupID)
	assert.Equal(t, 3, ae.Details[0].Selected)
}

// The same option submitted twice counts once: it must not trip the max bound.
func TestValidateSelectionsDeduplicates(t *testing.T) {
	resolved, err := ValidateSelections(testGroups(), []SelectionIn{
		{GroupID: 10, OptionID: 101},
		{GroupID: 10, OptionID: 101},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, uint(101), resolved[0].OptionID)
}

func TestValidateSelectionsEmptyOptionalOnly(t *testing.T) {
	groups := []repository.CatalogGroup{{
		GroupID: 20, Name: "Toppings", MinSelect: 0, MaxSelect: 2,
		Options: []repository.CatalogOption{{OptionID: 201, GroupID: 20, PriceDelta: d("25.50")}},
	}}
	resolved, err := ValidateSelections(groups, nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
