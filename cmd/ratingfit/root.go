package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ratingfit",
		Short: "Regress a season stat on player ratings",
		Long: `ratingfit matches each player's ratings to the stats row of the same
season, keeps rows above a minutes floor and fits ordinary least squares.
The coefficients show how much one rating point is worth in the response
stat (PER by default).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFitCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ratingfit %s\n", version)
		},
	}
}
