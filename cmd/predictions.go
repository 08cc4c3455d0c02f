package cmd

import (
	"fmt"

	"github.com/harvestguru/hg-cli/internal/adapters/render/prediction"
	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPredictionsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "predictions",
		Short: "List your past yield predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := requireSession(cmd, app); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			records, err := app.gateway.MyPredictions(cmd.Context())
			if err != nil {
				if domain.RequestErrorKindOf(err) != domain.KindNetwork {
					return err
				}

				// Offline: fall back to the locally cached records.
				records, err = app.history.List(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Could not reach the server; showing locally saved predictions.")
			}

			if len(records) == 0 {
				_, err := fmt.Fprintln(out, "No predictions yet. Run `hg predict` to make one.")
				return err
			}

			for i, record := range records {
				opts := prediction.RenderOptions{}
				if record.InputData != nil {
					opts.CropName = record.InputData.CropInfo.CropName
					opts.District = record.InputData.FarmDetails.District
				}

				view, err := prediction.Render(record.PredictionResult, opts)
				if err != nil {
					return err
				}

				if !record.CreatedAt.IsZero() {
					_, _ = fmt.Fprintf(out, "%s\n", record.CreatedAt.Format("2006-01-02 15:04"))
				}
				_, _ = fmt.Fprintln(out, view)
				if i < len(records)-1 {
					_, _ = fmt.Fprintln(out)
				}
			}

			return nil
		},
	}
}
