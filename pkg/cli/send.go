package cli

import (
	"os"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/discharging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type sendOptions struct {
	From          string `validate:"required"`
	To            string `validate:"required"`
	ConfDir       string `validate:"required,dir"`
	RuleDir       string `validate:"required,dir"`
	MaxDegree     int    `validate:"required,min=5"`
	Bidirectional bool
	OutDir        string
}

func newSendCmd() *cobra.Command {
	var opts sendOptions
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Enumerate the cases in which one degree sends charge to another",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			opts.ConfDir = fromConfig(opts.ConfDir, "conf_dir")
			opts.RuleDir = fromConfig(opts.RuleDir, "rule_dir")
			opts.MaxDegree = intFromConfig(opts.MaxDegree, "max_degree")
			if err := validate.Struct(opts); err != nil {
				log.Sugar().Errorf("invalid send options: %v", err)
				return err
			}
			sendDegree, err := datastructure.DegreeFromString(opts.From)
			if err != nil {
				return err
			}
			receiveDegree, err := datastructure.DegreeFromString(opts.To)
			if err != nil {
				return err
			}
			if opts.OutDir != "" {
				if info, err := os.Stat(opts.OutDir); err != nil || !info.IsDir() {
					return errors.Errorf("the directory %s does not exist", opts.OutDir)
				}
			}

			confs, err := catalog.LoadConfigurations(opts.ConfDir, log)
			if err != nil {
				return err
			}
			rules, err := catalog.LoadRules(opts.RuleDir, log)
			if err != nil {
				return err
			}
			enumerator := discharging.NewSendEnumerator(confs, rules, opts.MaxDegree, opts.Bidirectional, opts.OutDir, log)
			_, err = enumerator.Enumerate(sendDegree, receiveDegree)
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.From, "from", "f", "", "degree of the vertex that sends charge (must be fixed)")
	cmd.Flags().StringVarP(&opts.To, "to", "t", "", "degree of the vertex that receives charge")
	cmd.Flags().StringVarP(&opts.ConfDir, "conf", "c", "", "directory which includes configuration files")
	cmd.Flags().StringVarP(&opts.RuleDir, "rule", "r", "", "directory which includes rule files")
	cmd.Flags().IntVarP(&opts.MaxDegree, "max_degree", "m", 0, "maximum degree to check")
	cmd.Flags().BoolVarP(&opts.Bidirectional, "bidirectional", "b", false, "detect cases where charge moves both ways across the send edge")
	cmd.Flags().StringVarP(&opts.OutDir, "outdir", "o", "", "directory that emitted rule files are placed in (omit to skip writing)")
	return cmd
}
