package main

import (
	"fmt"
	"text/tabwriter"

	"pet-adoption/internal/dashboard"
	"pet-adoption/internal/models"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Contadores del dashboard (moderator/admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.loadPets(cmd)
			if err != nil {
				return err
			}
			var apps []models.Application
			if apps, err = a.api.Applications(cmd.Context(), ""); err != nil {
				return fmt.Errorf("load applications: %w", err)
			}
			s := dashboard.Stats(board.Pets().Items(), apps)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "total pets\t%d\n", s.TotalPets)
			fmt.Fprintf(tw, "available\t%d\n", s.AvailablePets)
			fmt.Fprintf(tw, "pending adoption\t%d\n", s.PendingAdoptions)
			fmt.Fprintf(tw, "adopted\t%d\n", s.AdoptedPets)
			fmt.Fprintf(tw, "applications\t%d\n", s.TotalApplications)
			fmt.Fprintf(tw, "  pending\t%d\n", s.PendingApplications)
			fmt.Fprintf(tw, "  approved\t%d\n", s.ApprovedApplications)
			fmt.Fprintf(tw, "  rejected\t%d\n", s.RejectedApplications)
			return tw.Flush()
		},
	}
}
