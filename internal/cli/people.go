package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/pms-lambda/internal/actor"
)

var (
	flagPersonID   string
	flagRole       string
	flagManager    string
	flagRosterFile string
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Manage the local people directory",
}

var peoplePutCmd = &cobra.Command{
	Use:   "put",
	Short: "Create or replace a person",
	Long: `Create or replace a person in the directory used to resolve
assignee roles and self-goal reviewers.

Examples:
  portal people put --id 6f1c... --role manager
  portal people put --id 9a2e... --role employee --manager 6f1c...`,
	PreRunE:  setup,
	PostRunE: teardown,
	RunE:     runPeoplePut,
}

var peopleImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load people from a YAML roster",
	Long: `Load every person in a YAML roster into the directory.

Example roster:
  people:
    - id: 6f1c...
      role: manager
    - id: 9a2e...
      role: employee
      manager: 6f1c...`,
	PreRunE:  setup,
	PostRunE: teardown,
	RunE:     runPeopleImport,
}

func directoryWriter() (actor.DirectoryWriter, error) {
	writer, ok := app.Directory.(actor.DirectoryWriter)
	if !ok {
		return nil, fmt.Errorf("directory for driver %s is read-only", app.Config.StorageDriver)
	}
	return writer, nil
}

func parsePerson() (actor.Person, error) {
	id, err := uuid.Parse(flagPersonID)
	if err != nil {
		return actor.Person{}, fmt.Errorf("invalid --id: %w", err)
	}
	role, ok := actor.ParseRole(flagRole)
	if !ok {
		return actor.Person{}, fmt.Errorf("invalid --role %q", flagRole)
	}

	p := actor.Person{ID: id, Role: role}
	if flagManager != "" {
		managerID, err := uuid.Parse(flagManager)
		if err != nil {
			return actor.Person{}, fmt.Errorf("invalid --manager: %w", err)
		}
		p.ManagerID = &managerID
	}
	return p, nil
}

func runPeoplePut(cmd *cobra.Command, _ []string) error {
	p, err := parsePerson()
	if err != nil {
		return err
	}

	writer, err := directoryWriter()
	if err != nil {
		return err
	}
	if err := writer.Save(cmd.Context(), p); err != nil {
		return err
	}

	cmd.Printf("saved %s (%s)\n", p.ID, p.Role)
	return nil
}

func runPeopleImport(cmd *cobra.Command, _ []string) error {
	people, err := actor.LoadRosterFile(flagRosterFile)
	if err != nil {
		return err
	}
	writer, err := directoryWriter()
	if err != nil {
		return err
	}
	if err := actor.SaveAll(cmd.Context(), writer, people); err != nil {
		return err
	}

	cmd.Printf("imported %d people\n", len(people))
	return nil
}

func init() {
	peoplePutCmd.Flags().StringVar(&flagPersonID, "id", "", "Person id")
	peoplePutCmd.Flags().StringVar(&flagRole, "role", "", "Role: employee, manager or hr")
	peoplePutCmd.Flags().StringVar(&flagManager, "manager", "", "Manager id")
	_ = peoplePutCmd.MarkFlagRequired("id")
	_ = peoplePutCmd.MarkFlagRequired("role")

	peopleImportCmd.Flags().StringVarP(&flagRosterFile, "file", "f", "", "Roster YAML file")
	_ = peopleImportCmd.MarkFlagRequired("file")

	peopleCmd.AddCommand(peoplePutCmd)
	peopleCmd.AddCommand(peopleImportCmd)
}
