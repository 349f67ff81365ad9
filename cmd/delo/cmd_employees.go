package main

import (
	"fmt"

	"deloconnect/cmd/delo/ui"
	"deloconnect/internal/api"
	"deloconnect/internal/listview"
	"deloconnect/internal/types"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	employeeSearch string
	employeeRole   string
	employeePage   int
	employeeSort   string

	createName    string
	createEmail   string
	createRole    string
	createManager string

	blockReason string
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List and manage platform users",
	RunE:  listEmployees,
}

var employeesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision a new user account",
	RunE:  createEmployee,
}

var employeesBlockCmd = &cobra.Command{
	Use:   "block [user-id]",
	Short: "Block a user with a reason",
	Args:  cobra.ExactArgs(1),
	RunE:  blockEmployee,
}

var employeesUnblockCmd = &cobra.Command{
	Use:   "unblock [user-id]",
	Short: "Lift a user block",
	Args:  cobra.ExactArgs(1),
	RunE:  unblockEmployee,
}

// employeeListModel builds the working set shared by the CLI and the
// dashboard's employees page.
func employeeListModel() *listview.Model[types.Employee] {
	return listview.New(
		func(e types.Employee) []string { return []string{e.Name, e.Email, e.UserID} },
		map[string]func(types.Employee) string{
			"name":  func(e types.Employee) string { return e.Name },
			"email": func(e types.Employee) string { return e.Email },
			"role":  func(e types.Employee) string { return string(e.Role) },
		},
	)
}

func listEmployees(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}

	employees, err := client.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	logger.Debug("fetched employees", zap.Int("count", len(employees)))

	m := employeeListModel()
	m.SetItems(employees)
	if employeeSearch != "" {
		m.SetSearch(employeeSearch)
	}
	if employeeRole != "" {
		role := types.Role(employeeRole)
		m.SetFilter(func(e types.Employee) bool { return e.Role == role })
	}
	if employeeSort != "" {
		m.SortBy(employeeSort)
	}
	m.SetPage(employeePage)

	styles := ui.DefaultStyles()
	table := ui.NewSimpleTable(
		fmt.Sprintf("Employees (page %d/%d, %d total)", m.Page(), m.TotalPages(), m.Len()),
		[]string{"ID", "Name", "Email", "Role", "Blocked"})
	for _, e := range m.PageItems() {
		blocked := "-"
		if e.IsBlocked {
			blocked = "yes: " + e.BlockedReason
		}
		table.AddRow(e.UserID, e.Name, e.Email, string(e.Role), blocked)
	}
	fmt.Print(table.View(styles))
	return nil
}

func createEmployee(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	if createName == "" || createEmail == "" {
		return fmt.Errorf("--name and --email are required")
	}

	emp, err := client.CreateUser(cmd.Context(), api.CreateUserRequest{
		Name:      createName,
		Email:     createEmail,
		Role:      types.Role(createRole),
		ManagerID: createManager,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created user %s (%s)\n", emp.UserID, emp.Email)
	return nil
}

func blockEmployee(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	if err := client.BlockUser(cmd.Context(), args[0], blockReason); err != nil {
		return err
	}
	fmt.Printf("Blocked %s\n", args[0])
	return nil
}

func unblockEmployee(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	if err := client.UnblockUser(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Unblocked %s\n", args[0])
	return nil
}

func init() {
	employeesCmd.Flags().StringVar(&employeeSearch, "search", "", "substring search across name/email/id")
	employeesCmd.Flags().StringVar(&employeeRole, "role", "", "filter by role (employee|hr|admin)")
	employeesCmd.Flags().IntVar(&employeePage, "page", 1, "page number")
	employeesCmd.Flags().StringVar(&employeeSort, "sort", "name", "sort key (name|email|role)")

	employeesCreateCmd.Flags().StringVar(&createName, "name", "", "full name")
	employeesCreateCmd.Flags().StringVar(&createEmail, "email", "", "email address")
	employeesCreateCmd.Flags().StringVar(&createRole, "role", "employee", "role (employee|hr|admin)")
	employeesCreateCmd.Flags().StringVar(&createManager, "manager", "", "manager user id")

	employeesBlockCmd.Flags().StringVar(&blockReason, "reason", "", "block reason")

	employeesCmd.AddCommand(employeesCreateCmd)
	employeesCmd.AddCommand(employeesBlockCmd)
	employeesCmd.AddCommand(employeesUnblockCmd)
}
