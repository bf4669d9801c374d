package main

import (
	"errors"
	"fmt"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/forms/submit"

	"github.com/spf13/cobra"
)

// errFormRejected: el formulario tiene errores (ya impresos).
var errFormRejected = errors.New("form has errors")

func newLoginCmd(a *app) *cobra.Command {
	var d forms.LoginDraft
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión (user, moderator o admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := submit.NewLoginFlow(a.api, a.sess, a.log).Submit(cmd.Context(), d)
			if err != nil {
				return err
			}
			if !out.OK {
				fmt.Fprintln(cmd.ErrOrStderr(), "login failed:")
				printErrors(cmd.ErrOrStderr(), out.Errors, forms.LoginSchema.Fields())
				return errFormRejected
			}
			name := d.Email
			if out.User != nil {
				name = out.User.Email
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s -> %s\n", name, out.Route)
			return nil
		},
	}
	cmd.Flags().StringVar(&d.Email, "email", "", "email")
	cmd.Flags().StringVar(&d.Password, "password", "", "password")
	cmd.Flags().BoolVar(&d.RememberMe, "remember", false, "recordar sesión")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var d forms.RegisterDraft
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Crear cuenta de adoptante",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := submit.NewRegisterFlow(a.api, a.sess, a.log).Submit(cmd.Context(), &d)
			if err != nil {
				return err
			}
			if !out.OK {
				fmt.Fprintln(cmd.ErrOrStderr(), "registration failed:")
				printErrors(cmd.ErrOrStderr(), out.Errors, forms.RegisterSchema.Fields())
				return errFormRejected
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account created -> %s\n", out.Route)
			return nil
		},
	}
	cmd.Flags().StringVar(&d.FirstName, "first-name", "", "nombre")
	cmd.Flags().StringVar(&d.LastName, "last-name", "", "apellido")
	cmd.Flags().StringVar(&d.Email, "email", "", "email")
	cmd.Flags().StringVar(&d.Phone, "phone", "", "teléfono (opcional)")
	cmd.Flags().StringVar(&d.Address, "address", "", "dirección (opcional)")
	cmd.Flags().StringVar(&d.Password, "password", "", "password (mínimo 8)")
	cmd.Flags().StringVar(&d.PasswordConfirmation, "confirm", "", "repetir password")
	cmd.Flags().BoolVar(&d.Terms, "accept-terms", false, "acepto términos y condiciones")
	return cmd
}

func newAdminRegisterCmd(a *app) *cobra.Command {
	var d forms.AdminRegisterDraft
	cmd := &cobra.Command{
		Use:   "admin-register",
		Short: "Crear cuenta de administrador",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := submit.NewAdminRegisterFlow(a.api, a.log).Submit(cmd.Context(), &d)
			if err != nil {
				return err
			}
			if !out.OK {
				fmt.Fprintln(cmd.ErrOrStderr(), "registration failed:")
				printErrors(cmd.ErrOrStderr(), out.Errors, forms.AdminRegisterSchema.Fields())
				return errFormRejected
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin account created, sign in with petctl login -> %s\n", out.Route)
			return nil
		},
	}
	cmd.Flags().StringVar(&d.FirstName, "first-name", "", "nombre")
	cmd.Flags().StringVar(&d.LastName, "last-name", "", "apellido")
	cmd.Flags().StringVar(&d.Email, "email", "", "email")
	cmd.Flags().StringVar(&d.Phone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&d.Department, "department", "", "área")
	cmd.Flags().StringVar(&d.EmployeeID, "employee-id", "", "legajo")
	cmd.Flags().StringVar(&d.Password, "password", "", "password (mínimo 8)")
	cmd.Flags().StringVar(&d.PasswordConfirmation, "confirm", "", "repetir password")
	cmd.Flags().BoolVar(&d.Terms, "accept-terms", false, "acepto términos y condiciones")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar el usuario de la sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.sess.Snapshot()
			if !st.Authenticated() || st.User == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			u := st.User
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s> role=%s\n", u.FirstName, u.LastName, u.Email, u.Role)
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión local",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}
