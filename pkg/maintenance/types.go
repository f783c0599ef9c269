// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package maintenance

type CreateRequest struct {
	UnitID      *int64  `json:"unit_id" validate:"omitempty,gt=0"`
	Title       string  `json:"title" validate:"max=200"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
}

// UpdateRequest carries only the fields being changed.
type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}
