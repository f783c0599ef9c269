// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

// Invite is the acceptance reference handed back to the inviter.
type Invite struct {
	InviteURL string `json:"invite_url"`
	Email     string `json:"email"`
}

type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type AcceptInviteResponse struct {
	OK    bool   `json:"ok"`
	Email string `json:"email"`
}
