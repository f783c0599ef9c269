// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "property-service",
	Short:        "Property Service",
	Long:         `Multi-tenant property management API: organization scoped accounts, invitations, billing gates and resources.`,
	SilenceUsage: true,
}

// Execute runs the command picked from os.Args.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
