package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"pet-adoption/internal/dashboard"
	"pet-adoption/internal/forms"
	"pet-adoption/internal/forms/submit"
	"pet-adoption/internal/models"

	"github.com/spf13/cobra"
)

func newApplyCmd(a *app) *cobra.Command {
	var d forms.ApplicationDraft
	cmd := &cobra.Command{
		Use:   "apply <pet-id>",
		Short: "Enviar una solicitud de adopción",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d.PetID = args[0]
			if u := a.sess.Snapshot().User; u != nil {
				if d.ApplicantName == "" {
					d.ApplicantName = u.FirstName + " " + u.LastName
				}
				if d.Email == "" {
					d.Email = u.Email
				}
			}

			ctrl := &submit.Controller[forms.ApplicationDraft, models.Application]{
				Schema:     forms.ApplicationSchema,
				Send:       a.api.SubmitApplication,
				ErrorField: forms.FieldPetID,
				Log:        a.log,
			}
			res, err := ctrl.Submit(cmd.Context(), d)
			if err != nil {
				return err
			}
			if !res.OK {
				fmt.Fprintln(cmd.ErrOrStderr(), "application failed:")
				printErrors(cmd.ErrOrStderr(), res.Errors, forms.ApplicationSchema.Fields())
				return errFormRejected
			}
			fmt.Fprintf(cmd.OutOrStdout(), "application %s for %s is %s\n",
				res.Response.ID, res.Response.PetName, res.Response.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&d.ApplicantName, "name", "", "nombre completo (default el de la sesión)")
	cmd.Flags().StringVar(&d.Email, "email", "", "email (default el de la sesión)")
	cmd.Flags().StringVar(&d.Phone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&d.Address, "address", "", "dirección")
	cmd.Flags().StringVar(&d.Experience, "experience", "", "experiencia con mascotas")
	cmd.Flags().StringVar(&d.Reason, "reason", "", "por qué quiere adoptar")
	return cmd
}

func newApplicationsCmd(a *app) *cobra.Command {
	var (
		search string
		status string
		mine   bool
	)
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"applications"},
		Short:   "Listar solicitudes (moderator/admin, o --mine)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				apps []models.Application
				err  error
			)
			if mine {
				apps, err = a.api.MyApplications(cmd.Context())
			} else {
				apps, err = a.api.Applications(cmd.Context(), "")
			}
			if err != nil {
				return fmt.Errorf("load applications: %w", err)
			}
			board := dashboard.NewApplicationBoard(apps, a.api, a.log)
			view := board.View(dashboard.ApplicationFilter{Search: search, Status: status})
			printApplications(cmd.OutOrStdout(), view)
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.Summary(len(view), len(apps), "applications"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "busca en solicitante, mascota y email")
	cmd.Flags().StringVar(&status, "status", dashboard.AllStatuses, "pending|approved|rejected|all")
	cmd.Flags().BoolVar(&mine, "mine", false, "solo las propias")

	cmd.AddCommand(
		newReviewCmd(a, "approve", models.ApplicationApproved),
		newReviewCmd(a, "reject", models.ApplicationRejected),
	)
	return cmd
}

func newReviewCmd(a *app, use string, decision models.ApplicationStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <application-id>",
		Short: "Marcar la solicitud como " + string(decision),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := a.api.Applications(cmd.Context(), "")
			if err != nil {
				return fmt.Errorf("load applications: %w", err)
			}
			board := dashboard.NewApplicationBoard(apps, a.api, a.log)
			app, err := board.Review(cmd.Context(), args[0], decision)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "application %s for %s is %s\n", app.ID, app.PetName, app.Status)
			return nil
		},
	}
}

func printApplications(w io.Writer, apps []models.Application) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAPPLICANT\tEMAIL\tPET\tSTATUS\tSUBMITTED")
	for _, ap := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ap.ID, ap.ApplicantName, ap.Email, ap.PetName, ap.Status, ap.DateSubmitted)
	}
	_ = tw.Flush()
}
