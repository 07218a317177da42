package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/genc-murat/pgarray/internal/ciconfig"
)

func main() {
	root := &cobra.Command{
		Use:           "cilint",
		Short:         "Validate CircleCI version 2 pipeline configuration",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	check := &cobra.Command{
		Use:   "check [path]",
		Short: "Check a config file against the version 2 job/step schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".circleci/config.yml"
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := ciconfig.Load(path)
			if err != nil {
				return err
			}
			if err := ciconfig.Validate(cfg); err != nil {
				return fmt.Errorf("%s:\n%w", path, err)
			}

			names := make([]string, 0, len(cfg.Jobs))
			for name := range cfg.Jobs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				job := cfg.Jobs[name]
				fmt.Printf("job %s: %d docker image(s), %d step(s)\n", name, len(job.Docker), len(job.Steps))
			}
			fmt.Printf("%s: OK\n", path)
			return nil
		},
	}
	root.AddCommand(check)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
