package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/domain"
)

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "List your past applications and their match scores",
	Long: `Lists every application stored for --user (default JOBBOARD_USER_ID)
together with the job it was made for and its match score.

Examples:
  jobboard applications
  jobboard applications --user new-7`,
	RunE: runApplications,
}

var applicationsUser string

func init() {
	applicationsCmd.Flags().StringVar(&applicationsUser, "user", "", "user id (default JOBBOARD_USER_ID)")
}

func runApplications(cmd *cobra.Command, args []string) error {
	a, cleanup, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	user := domain.UserID(applicationsUser)
	if user == "" {
		user = domain.UserID(a.Config.UserID)
	}
	if user == "" {
		return errors.New("no user: pass --user or set JOBBOARD_USER_ID")
	}

	records, err := a.Remote.ListApplications(cmd.Context(), user)
	if err != nil {
		return errors.Wrap(err, "list applications")
	}
	if len(records) == 0 {
		pterm.Info.Printfln("No applications for %s yet.", user)
		return nil
	}

	data := pterm.TableData{{"Job", "Title", "Company", "Score"}}
	for _, r := range records {
		data = append(data, []string{r.JobID.String(), r.JobTitle, r.JobCompany, r.Percent()})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render applications")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
