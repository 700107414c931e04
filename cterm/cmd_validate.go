package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rhystmorgan/contactsTUI/internal/store"
	"rhystmorgan/contactsTUI/internal/validation"
)

var (
	validateName  string
	validatePhone string
	validateEmail string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check contact fields without adding them",
	Long: `Runs the same name, phone and email checks the add and edit forms use
and reports each field. Exits non-zero when any field is invalid.

Example:
  cterm validate --name "Ann Lee" --phone 555-0100 --email ann@example.com`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateName, "name", "", "Contact name")
	validateCmd.Flags().StringVar(&validatePhone, "phone", "", "Phone number")
	validateCmd.Flags().StringVar(&validateEmail, "email", "", "Email address (optional)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctrl := store.NewController(nil, nil, logger)
	result := ctrl.ValidateForm(validation.FormInput{
		Name:  validateName,
		Phone: validatePhone,
		Email: validateEmail,
	})

	out := cmd.OutOrStdout()
	for _, field := range validation.Fields {
		res := result.Fields[field]
		if res.Valid {
			fmt.Fprintf(out, "✓ %s\n", field)
			continue
		}
		fmt.Fprintf(out, "✗ %s: %s\n", field, res.Message)
	}

	if !result.IsValid {
		return errors.New(result.Summary)
	}
	return nil
}
