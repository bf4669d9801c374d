package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"pet-adoption/internal/dashboard"
	"pet-adoption/internal/forms"
	"pet-adoption/internal/modals"
	"pet-adoption/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newPetsCmd(a *app) *cobra.Command {
	var (
		search  string
		status  string
		species string
		all     bool
	)
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Listar mascotas",
		Long: "Sin --all muestra solo las disponibles (vista de adoptante, filtro --species).\n" +
			"Con --all muestra todas (vista de admin, filtro --status).",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.loadPets(cmd)
			if err != nil {
				return err
			}
			var view []models.Pet
			if all {
				view = board.View(dashboard.PetFilter{Search: search, Status: status})
			} else {
				view = board.Adoptable(dashboard.AdoptableFilter{Search: search, Species: species})
			}
			printPets(cmd.OutOrStdout(), view)
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.Summary(len(view), board.Pets().Len(), "pets"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "busca en nombre, raza y especie")
	cmd.Flags().StringVar(&status, "status", dashboard.AllStatuses, "available|pending|adopted|all (con --all)")
	cmd.Flags().StringVar(&species, "species", dashboard.AnySpecies, "especie o 'available' para todas")
	cmd.Flags().BoolVar(&all, "all", false, "vista de admin")

	cmd.AddCommand(newPetAddCmd(a), newPetEditCmd(a), newPetStatusCmd(a), newPetDeleteCmd(a))
	return cmd
}

func (a *app) loadPets(cmd *cobra.Command) (*dashboard.PetBoard, error) {
	board := dashboard.NewPetBoard(nil, a.api, a.log)
	if err := board.Load(cmd.Context(), a.api); err != nil {
		return nil, fmt.Errorf("load pets: %w", err)
	}
	return board, nil
}

func printPets(w io.Writer, pets []models.Pet) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tBREED\tAGE\tSTATUS\tLOCATION")
	for _, p := range pets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Species, orDash(p.Breed), orDash(p.Age), p.Status, orDash(p.Location))
	}
	_ = tw.Flush()
}

// petFlags registra los campos del modal de mascota sobre d.
func petFlags(fs *pflag.FlagSet, d *forms.PetDraft) {
	fs.StringVar(&d.Name, "name", "", "nombre")
	fs.StringVar(&d.Species, "species", "", "especie")
	fs.StringVar(&d.Breed, "breed", "", "raza")
	fs.StringVar(&d.Age, "age", "", "edad")
	fs.StringVar(&d.Gender, "gender", "", "sexo")
	fs.StringVar(&d.Size, "size", "", "tamaño")
	fs.StringVar(&d.Color, "color", "", "color")
	fs.StringVar(&d.Description, "description", "", "descripción")
	fs.StringVar(&d.Location, "location", "", "ubicación")
	fs.StringVar(&d.Image, "image", "", "URL o data URI de la foto")
	fs.BoolVar(&d.Vaccinated, "vaccinated", false, "vacunada")
	fs.BoolVar(&d.Spayed, "spayed", false, "castrada")
}

// overlay copia a dst solo los flags que el usuario pasó.
func overlay(fs *pflag.FlagSet, src forms.PetDraft, dst *forms.PetDraft) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "name":
			dst.Name = src.Name
		case "species":
			dst.Species = src.Species
		case "breed":
			dst.Breed = src.Breed
		case "age":
			dst.Age = src.Age
		case "gender":
			dst.Gender = src.Gender
		case "size":
			dst.Size = src.Size
		case "color":
			dst.Color = src.Color
		case "description":
			dst.Description = src.Description
		case "location":
			dst.Location = src.Location
		case "image":
			dst.Image = src.Image
		case "vaccinated":
			dst.Vaccinated = src.Vaccinated
		case "spayed":
			dst.Spayed = src.Spayed
		}
	})
}

// modalError imprime los errores del modal cuando el borrador no valida.
func modalError(w io.Writer, err error, errs func() map[string]string) error {
	if errors.Is(err, modals.ErrInvalid) {
		fmt.Fprintln(w, "pet has errors:")
		msgs := errs()
		for _, f := range forms.PetSchema.Fields() {
			if msg := msgs[f]; msg != "" {
				fmt.Fprintf(w, "  %s: %s\n", f, msg)
			}
		}
		return errFormRejected
	}
	return err
}

func newPetAddCmd(a *app) *cobra.Command {
	var d forms.PetDraft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Dar de alta una mascota (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			board := dashboard.NewPetBoard(nil, a.api, a.log)
			m := modals.NewAddPet(board)
			m.Open()
			m.Edit(func(draft *forms.PetDraft) { overlay(cmd.Flags(), d, draft) })

			p, err := m.Submit(cmd.Context())
			if err != nil {
				return modalError(cmd.ErrOrStderr(), err, func() map[string]string { return m.Errors().Messages() })
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	petFlags(cmd.Flags(), &d)
	return cmd
}

func newPetEditCmd(a *app) *cobra.Command {
	var d forms.PetDraft
	cmd := &cobra.Command{
		Use:   "edit <pet-id>",
		Short: "Editar una mascota (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.loadPets(cmd)
			if err != nil {
				return err
			}
			target, ok := board.Pets().Get(args[0])
			if !ok {
				return fmt.Errorf("pet %s not found", args[0])
			}
			m := modals.NewEditPet(board)
			m.Open(target)
			m.Edit(func(draft *forms.PetDraft) { overlay(cmd.Flags(), d, draft) })

			p, err := m.Submit(cmd.Context())
			if err != nil {
				return modalError(cmd.ErrOrStderr(), err, func() map[string]string { return m.Errors().Messages() })
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	petFlags(cmd.Flags(), &d)
	return cmd
}

func newPetStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status <pet-id> available|pending|adopted",
		Short:     "Cambiar el estado de una mascota (admin)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.PetAvailable), string(models.PetPending), string(models.PetAdopted)},
		RunE: func(cmd *cobra.Command, args []string) error {
			status := models.PetStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("unknown status %q: use available, pending or adopted", args[1])
			}
			board, err := a.loadPets(cmd)
			if err != nil {
				return err
			}
			p, err := board.SetStatus(cmd.Context(), args[0], status)
			if errors.Is(err, dashboard.ErrNotFound) {
				return fmt.Errorf("pet %s not found", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is %s\n", p.Name, p.ID, p.Status)
			return nil
		},
	}
}

func newPetDeleteCmd(a *app) *cobra.Command {
	var confirm string
	cmd := &cobra.Command{
		Use:   "delete <pet-id>",
		Short: "Borrar una mascota (admin); --confirm debe repetir el nombre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.loadPets(cmd)
			if err != nil {
				return err
			}
			target, ok := board.Pets().Get(args[0])
			if !ok {
				return fmt.Errorf("pet %s not found", args[0])
			}
			m := modals.NewDeletePet(board)
			m.Open(target)
			m.SetConfirmation(confirm)
			if err := m.Confirm(cmd.Context()); err != nil {
				if errors.Is(err, modals.ErrNotConfirmed) {
					return fmt.Errorf("type the pet name exactly to confirm: --confirm %q", target.Name)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", target.Name, target.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", "nombre exacto de la mascota")
	return cmd
}
