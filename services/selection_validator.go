package services

import (
	"github.com/shopspring/decimal"

	"github.com/Usserslalo/delixmi-backend-sub003/pkg/apperr"
	"github.com/Usserslalo/delixmi-backend-sub003/repository"
)

type SelectionIn struct {
	GroupID  uint `json:"modifierGroupId" binding:"required"`
	OptionID uint `json:"modifierOptionId" binding:"required"`
}

// ResolvedSelection carries the option's current price delta for pricing.
type ResolvedSelection struct {
	GroupID    uint
	OptionID   uint
	PriceDelta decimal.Decimal
}

// ValidateSelections checks the requested picks against the product's catalog
// groups. It is pure: no cart state, no writes. Checks run in order; within a
// category every violation is collected so the caller can fix the request in
// one round trip. Duplicate picks are silently deduplicated first — selections
// are identities, not quantities.
func ValidateSelections(groups []repository.CatalogGroup, picks []SelectionIn) ([]ResolvedSelection, error) {
	picks = dedupPicks(picks)

	groupByID := make(map[uint]repository.CatalogGroup, len(groups))
	optionByID := make(map[uint]repository.CatalogOption)
	for _, g := range groups {
		groupByID[g.GroupID] = g
		for _, o := range g.Options {
			optionByID[o.OptionID] = o
		}
	}

	// 1. every submitted group must apply to the product
	var details []apperr.Detail
	for _, p := range picks {
		if _, ok := groupByID[p.GroupID]; !ok {
			details = append(details, apperr.Detail{
				Code:    apperr.CodeInvalidModifierGroup,
				GroupID: p.GroupID, OptionID: p.OptionID,
				Message: "modifier group does not apply to this product",
			})
		}
	}
	if len(details) > 0 {
		return nil, apperr.Validation(apperr.CodeInvalidModifierGroup, "unknown modifier group", details)
	}

	// 2. every submitted option must exist
	for _, p := range picks {
		if _, ok := optionByID[p.OptionID]; !ok {
			details = append(details, apperr.Detail{
				Code:    apperr.CodeInvalidModifierOption,
				GroupID: p.GroupID, OptionID: p.OptionID,
				Message: "modifier option not found",
			})
		}
	}
	if len(details) > 0 {
		return nil, apperr.Validation(apperr.CodeInvalidModifierOption, "unknown modifier option", details)
	}

	// 3. the option's true group must be the submitted one (cross-wired request)
	for _, p := range picks {
		if o := optionByID[p.OptionID]; o.GroupID != p.GroupID {
			details = append(details, apperr.Detail{
				Code:     apperr.CodeModifierGroupMismatch,
				OptionID: p.OptionID,
				ExpectedGroup: o.GroupID, ActualGroup: p.GroupID,
				Message: "option belongs to a different group",
			})
		}
	}
	if len(details) > 0 {
		return nil, apperr.Validation(apperr.CodeModifierGroupMismatch, "modifier option submitted under the wrong group", details)
	}

	// 4. cardinality per group; all violating groups reported together
	counts := make(map[uint]int, len(groups))
	for _, p := range picks {
		counts[p.GroupID]++
	}
	under := false
	for _, g := range groups {
		n := counts[g.GroupID]
		switch {
		case g.MinSelect > 0 && n < g.MinSelect:
			under = true
			details = append(details, apperr.Detail{
				Code:    apperr.CodeModifiersRequired,
				GroupID: g.GroupID, MinSelect: g.MinSelect, MaxSelect: g.MaxSelect, Selected: n,
				Message: "required modifier group needs more selections",
			})
		case g.MaxSelect > 0 && n > g.MaxSelect:
			details = append(details, apperr.Detail{
				Code:    apperr.CodeInvalidSelection,
				GroupID: g.GroupID, MinSelect: g.MinSelect, MaxSelect: g.MaxSelect, Selected: n,
				Message: "too many selections for modifier group",
			})
		}
	}
	if len(details) > 0 {
		code := apperr.CodeInvalidSelection
		if under {
			code = apperr.CodeModifiersRequired
		}
		return nil, apperr.Validation(code, "modifier selection violates group bounds", details)
	}

	// 5. defensive: a resolved option's group could have been detached from the
	// product between catalog fetch and here
	for _, p := range picks {
		if _, ok := groupByID[optionByID[p.OptionID].GroupID]; !ok {
			details = append(details, apperr.Detail{
				Code:    apperr.CodeInvalidProductModifiers,
				GroupID: optionByID[p.OptionID].GroupID, OptionID: p.OptionID,
				Message: "option group no longer attached to product",
			})
		}
	}
	if len(details) > 0 {
		return nil, apperr.Validation(apperr.CodeInvalidProductModifiers, "modifiers no longer valid for product", details)
	}

	resolved := make([]ResolvedSelection, 0, len(picks))
	for _, p := range picks {
		o := optionByID[p.OptionID]
		resolved = append(resolved, ResolvedSelection{GroupID: o.GroupID, OptionID: o.OptionID, PriceDelta: o.PriceDelta})
	}
	return resolved, nil
}

func dedupPicks(picks []SelectionIn) []SelectionIn {
	out := make([]SelectionIn, 0, len(picks))
	seen := make(map[SelectionIn]struct{}, len(picks))
	for _, p := range picks {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
