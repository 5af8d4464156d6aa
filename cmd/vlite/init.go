package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vlite/internal/config"
	"github.com/vango-dev/vlite/internal/errors"
)

func initCmd(flags *globalFlags) *cobra.Command {
	var (
		yamlFormat bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(flags.dir) && !force {
				return errors.New("E202").
					WithDetailf("A config file already exists in %s.", flags.dir).
					WithSuggestion("Pass --force to overwrite it")
			}

			name := config.JSONFileName
			if yamlFormat {
				name = config.YAMLFileName
			}
			path := filepath.Join(flags.dir, name)

			cfg := config.New()
			cfg.Name = filepath.Base(absDir(flags.dir))
			cfg.Todos = []string{"Read the docs", "Write a view"}
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Created %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yamlFormat, "yaml", false, "Write vlite.yaml instead of vlite.json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}

func absDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
