// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

type BuildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

type Status struct {
	Status    string     `json:"status"`
	BuildInfo *BuildInfo `json:"build_info"`
}

type Version struct {
	Version string `json:"version"`
}
