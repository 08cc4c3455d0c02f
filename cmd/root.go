package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hg",
		Short:         "HarvestGuru CLI (hg): crop yield predictions and farming advice",
		Long:          "hg (HarvestGuru CLI) lets a farmer register, sign in, submit farm and crop details for a yield prediction, check weather advice, and chat with a multilingual farming assistant.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newPredictCmd(app),
		newPredictionsCmd(app),
		newWeatherCmd(app),
		newChatCmd(app),
	)

	return rootCmd
}
