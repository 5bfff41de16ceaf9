package commands

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/domain"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply to one job",
	Long: `Applies to the job with --job, either by uploading a PDF resume with
--resume or by using the stored profile of the configured user with
--existing. The command waits for the match score.

Examples:
  jobboard apply --job 5 --resume ~/cv.pdf
  JOBBOARD_USER_ID=u1 jobboard apply --job 5 --existing`,
	RunE: runApply,
}

var (
	applyJob      string
	applyResume   string
	applyExisting bool
)

func init() {
	applyCmd.Flags().StringVar(&applyJob, "job", "", "job id")
	applyCmd.Flags().StringVar(&applyResume, "resume", "", "PDF resume to upload")
	applyCmd.Flags().BoolVar(&applyExisting, "existing", false, "use the stored resume profile")
	_ = applyCmd.MarkFlagRequired("job")
	applyCmd.MarkFlagsMutuallyExclusive("resume", "existing")
	applyCmd.MarkFlagsOneRequired("resume", "existing")
}

func runApply(cmd *cobra.Command, args []string) error {
	a, cleanup, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if err := a.Catalog.Load(ctx); err != nil {
		return errors.Wrap(err, "could not load jobs")
	}
	id := domain.NewJobID(applyJob)

	var attempt *board.Attempt
	if applyExisting {
		attempt, err = a.Board.ApplyExistingTo(ctx, id)
	} else {
		var data []byte
		if data, err = os.ReadFile(applyResume); err != nil {
			return errors.Wrap(err, "read resume")
		}
		attempt, err = a.Board.ApplyUploadTo(ctx, id, &domain.ResumeFile{Name: filepath.Base(applyResume), Data: data})
	}
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Submitting application...")
	res, err := attempt.Wait(ctx)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		if hint := domain.Hint(err); hint != "" {
			pterm.Info.Println(hint)
		}
		return errors.Wrapf(err, "apply to job %s", applyJob)
	}
	if spinner != nil {
		_ = spinner.Stop()
	}

	pterm.Success.Printfln("Application submitted! Match score: %s", res.Percent())
	if applyResume != "" {
		pterm.Info.Printfln("Resume stored for user %s", res.UserID)
	}
	return nil
}
