package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"rhystmorgan/contactsTUI/internal/models"
	"rhystmorgan/contactsTUI/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print the contacts from the service, optionally filtered",
	Long: `Fetches the contact list and prints it as a table. With a query only
contacts whose name, phone or email contains it (ignoring case) are shown.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctrl, client, err := newController()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := ctrl.Load(cmd.Context()); err != nil {
		return fmt.Errorf("%s: %w", store.UserMessage(err), err)
	}

	contacts := ctrl.Search(strings.Join(args, " "))
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(contacts))
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d contacts\n", len(contacts), ctrl.Store().Len())
	return nil
}

func renderTable(contacts []models.Contact) string {
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{strconv.Itoa(c.ID), c.Name, c.Phone, c.Email})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PHONE", "EMAIL").
		Rows(rows...).
		String()
}
