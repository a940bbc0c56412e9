// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

func runProfilesCommand(cmd *cobra.Command, args []string) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tSECURITY\tKEY SIZES")
	for _, p := range datatypes.Profiles() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Code, p.DisplayName, p.SecurityLevel, p.KeySizes)
	}
	tw.Flush()

	fmt.Println()
	for _, p := range datatypes.Profiles() {
		fmt.Printf("%s: %s\n", p.DisplayName, p.Description)
	}
}
