package cli

import (
	"os"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/discharging"
	"github.com/spf13/cobra"
)

type evaluateOptions struct {
	Wheel       string `validate:"required"`
	RuleDir     string `validate:"required,dir"`
	SendCaseDir string `validate:"required,dir"`
	ConfDir     string `validate:"required,dir"`
	MaxDegree   int    `validate:"required,min=5"`
	Workers     int
}

func newEvaluateCmd() *cobra.Command {
	var opts evaluateOptions
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Search wheel files for overcharged cartwheels",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			opts.RuleDir = fromConfig(opts.RuleDir, "rule_dir")
			opts.SendCaseDir = fromConfig(opts.SendCaseDir, "send_case_dir")
			opts.ConfDir = fromConfig(opts.ConfDir, "conf_dir")
			opts.MaxDegree = intFromConfig(opts.MaxDegree, "max_degree")
			if err := validate.Struct(opts); err != nil {
				log.Sugar().Errorf("invalid evaluate options: %v", err)
				return err
			}

			rules, err := catalog.LoadRules(opts.RuleDir, log)
			if err != nil {
				return err
			}
			sendCases, err := catalog.LoadRules(opts.SendCaseDir, log)
			if err != nil {
				return err
			}
			confs, err := catalog.LoadConfigurations(opts.ConfDir, log)
			if err != nil {
				return err
			}
			evaluator := discharging.NewEvaluator(rules, sendCases, confs, opts.MaxDegree, log)

			info, err := os.Stat(opts.Wheel)
			if err != nil {
				return err
			}
			if info.IsDir() {
				return evaluator.EvaluateDir(opts.Wheel, opts.Workers)
			}
			_, _, err = evaluator.EvaluateFile(opts.Wheel)
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.Wheel, "wheel", "w", "", "wheel file to evaluate, or a directory of wheel files")
	cmd.Flags().StringVarP(&opts.RuleDir, "rule", "r", "", "directory which includes rule files")
	cmd.Flags().StringVarP(&opts.SendCaseDir, "send_case", "s", "", "directory which includes send case files (.rule extension)")
	cmd.Flags().StringVarP(&opts.ConfDir, "conf", "c", "", "directory which includes configuration files")
	cmd.Flags().IntVarP(&opts.MaxDegree, "max_degree", "m", 0, "maximum degree to check")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "wheel files evaluated in parallel (0 = number of CPUs)")
	return cmd
}
