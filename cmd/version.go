// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/canonical/property-service/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the service version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "property-service %s (%s)\n", version.Version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
