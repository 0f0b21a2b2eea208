package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilgore5/slate/config"
	"github.com/kilgore5/slate/deploy"
	"github.com/kilgore5/slate/themekit"
)

var (
	noDelete    bool
	changedOnly bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy [files...]",
	Short: "Deploy theme files to the configured store",
	Long: `Deploys theme files through Theme Kit.

With file arguments (or --changed), only those files are deployed, in
additive mode. Without arguments the whole theme is deployed: by default
the remote theme is mirrored to the local files exactly (remote-only files
are deleted); pass --nodelete to preserve them instead.`,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().BoolVar(&noDelete, "nodelete", false,
		"whole-theme deploys preserve remote files absent locally")
	deployCmd.Flags().BoolVar(&changedOnly, "changed", false,
		"deploy the files reported as changed by git status")
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	config.MustValid(cfg)

	if !themekit.Installed() {
		return fmt.Errorf("%q binary not found in PATH; install Theme Kit first", themekit.DefaultProgram)
	}

	runner := themekit.New(themekit.WithConsoleRedirect(true))
	if v, err := runner.Version(cmd.Context()); err == nil && !themekit.MeetsMinimum(v) {
		fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf(
			"Theme Kit %s is older than the supported minimum %s; deploy flags may not match.",
			v, themekit.MinimumVersion)))
	}

	d := deploy.New(cfg, runner)

	files := args
	if changedOnly {
		files, err = changedThemeFiles(".")
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println(infoStyle.Render("No changed theme files to deploy."))
			return nil
		}
	}

	if len(files) > 0 {
		result, err := d.Sync(files)
		if err != nil {
			return err
		}
		fmt.Println(infoStyle.Render(fmt.Sprintf(
			"Deploying %d file(s) to %s (%s)...", len(result.Files), cfg.Store, cfg.Environment)))
		d.Wait()
		fmt.Println(successStyle.Render(
			"Deploy handed off to Theme Kit; transfer results are reported above."))
		return nil
	}

	mode := "replace"
	run := d.Replace
	if noDelete {
		mode = "upload"
		run = d.Upload
	}
	fmt.Println(infoStyle.Render(fmt.Sprintf(
		"Deploying the whole theme to %s (%s, %s mode)...", cfg.Store, cfg.Environment, mode)))
	if _, err := run(); err != nil {
		return err
	}
	fmt.Println(successStyle.Render(
		"Deploy handed off to Theme Kit; transfer results are reported above."))
	return nil
}
