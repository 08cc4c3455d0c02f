package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harvestguru/hg-cli/internal/adapters/render/prediction"
	"github.com/harvestguru/hg-cli/internal/adapters/render/predictform"
	"github.com/harvestguru/hg-cli/internal/application"
	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/spf13/cobra"
)

type predictFlags struct {
	state        string
	district     string
	village      string
	pincode      string
	farmSize     string
	farmSizeUnit string

	crop       string
	variety    string
	sowingDate string
	season     string

	soilType       string
	fertilizerUsed string
	phLevel        string
	organicCarbon  string

	irrigationSource    string
	irrigationFrequency string
	waterAvailability   string
}

func newPredictCmd(app *app) *cobra.Command {
	var flags predictFlags

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict crop yield from farm details",
		Long:  "Predict crop yield from farm, crop, soil, and irrigation details. Without flags an interactive form opens; with flags the prediction is submitted directly.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			workflow := application.NewPredictionWorkflow(app.gateway, app.refs).WithHistory(app.history)
			loadReferenceData(cmd.Context(), cmd.ErrOrStderr(), app.refs)

			if cmd.Flags().NFlag() == 0 {
				return runPredictForm(cmd, workflow, app.refs, session.User.ID)
			}

			return runPredictDirect(cmd, workflow, app.refs, flags, session.User.ID)
		},
	}

	cmd.Flags().StringVar(&flags.state, "state", "", "State")
	cmd.Flags().StringVar(&flags.district, "district", "", "District (must belong to --state)")
	cmd.Flags().StringVar(&flags.village, "village", "", "Village")
	cmd.Flags().StringVar(&flags.pincode, "pincode", "", "Pincode")
	cmd.Flags().StringVar(&flags.farmSize, "farm-size", "", "Farm size (positive number)")
	cmd.Flags().StringVar(&flags.farmSizeUnit, "farm-size-unit", "acre", "Farm size unit (acre|hectare|bigha)")
	cmd.Flags().StringVar(&flags.crop, "crop", "", "Crop name")
	cmd.Flags().StringVar(&flags.variety, "variety", "", "Crop variety")
	cmd.Flags().StringVar(&flags.sowingDate, "sowing-date", "", "Sowing date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.season, "season", "", "Season (Kharif|Rabi|Zaid)")
	cmd.Flags().StringVar(&flags.soilType, "soil-type", "", "Soil type")
	cmd.Flags().StringVar(&flags.fertilizerUsed, "fertilizer", "", "Fertilizer used")
	cmd.Flags().StringVar(&flags.phLevel, "ph", "", "Soil pH (0-14, leave blank if not measured)")
	cmd.Flags().StringVar(&flags.organicCarbon, "organic-carbon", "", "Organic carbon (leave blank if not measured)")
	cmd.Flags().StringVar(&flags.irrigationSource, "irrigation-source", "", "Irrigation source")
	cmd.Flags().StringVar(&flags.irrigationFrequency, "irrigation-frequency", "", "Irrigation frequency (Rarely|Sometimes|Regularly)")
	cmd.Flags().StringVar(&flags.waterAvailability, "water-availability", "", "Water availability")

	return cmd
}

// loadReferenceData fires the three independent option-list loads.
// A failed load leaves its list empty and prints a notice; the command
// proceeds with free-text entry validated server-side.
func loadReferenceData(ctx context.Context, notices io.Writer, refs *application.ReferenceCache) {
	for _, load := range []struct {
		name string
		fn   func(context.Context) error
	}{
		{"states", refs.LoadStates},
		{"crops", refs.LoadCrops},
		{"soil types", refs.LoadSoilTypes},
	} {
		if err := load.fn(ctx); err != nil {
			fmt.Fprintf(notices, "Could not load %s: %v\n", load.name, err)
		}
	}
}

func runPredictForm(cmd *cobra.Command, workflow *application.PredictionWorkflow, refs *application.ReferenceCache, userID string) error {
	model := predictform.NewModel(cmd.Context(), workflow, refs, userID)
	p := tea.NewProgram(model, tea.WithContext(cmd.Context()))

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if final, ok := finalModel.(predictform.Model); ok && final.Err() != nil {
		return final.Err()
	}

	return nil
}

func runPredictDirect(cmd *cobra.Command, workflow *application.PredictionWorkflow, refs *application.ReferenceCache, flags predictFlags, userID string) error {
	cached, ok, generation, err := workflow.SetState(flags.state)
	if err != nil {
		return err
	}

	if flags.district != "" {
		districts := cached
		fetched := ok
		if !ok {
			districts, _, err = refs.FetchDistricts(cmd.Context(), flags.state, generation)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not load districts for %s: %v\n", flags.state, err)
				districts = nil
			} else {
				fetched = true
			}
		}
		if fetched && !slices.Contains(districts, flags.district) {
			return &domain.ValidationError{Field: "district", Reason: fmt.Sprintf("%q is not a district of %s", flags.district, flags.state)}
		}
		if err := workflow.SetDistrict(flags.district); err != nil {
			return err
		}
	}

	if err := workflow.SetFarmDetails(flags.village, flags.pincode, flags.farmSize, flags.farmSizeUnit); err != nil {
		return err
	}
	if err := workflow.SetCrop(flags.crop, flags.variety, flags.sowingDate, flags.season); err != nil {
		return err
	}
	if err := workflow.SetSoil(flags.soilType, flags.fertilizerUsed, flags.phLevel, flags.organicCarbon); err != nil {
		return err
	}
	if err := workflow.SetIrrigation(flags.irrigationSource, flags.irrigationFrequency, flags.waterAvailability); err != nil {
		return err
	}

	if !workflow.CanSubmit() {
		return domain.ErrFormIncomplete
	}

	submit := func(ctx context.Context) (string, error) {
		result, submitErr := workflow.Submit(ctx, userID)
		if submitErr != nil {
			return "", submitErr
		}

		return prediction.Render(result, prediction.RenderOptions{
			CropName: flags.crop,
			District: flags.district,
		})
	}
	view, err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Predicting yield...", submit)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), view)
	return err
}
