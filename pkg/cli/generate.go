package cli

import (
	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/discharging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	Degree      string `validate:"required"`
	ConfDir     string `validate:"required,dir"`
	SendCaseDir string `validate:"required,dir"`
	MaxDegree   int    `validate:"required,min=5"`
	OutDir      string `validate:"required"`
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate wheel files whose hub could end up overcharged",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			opts.ConfDir = fromConfig(opts.ConfDir, "conf_dir")
			opts.SendCaseDir = fromConfig(opts.SendCaseDir, "send_case_dir")
			opts.MaxDegree = intFromConfig(opts.MaxDegree, "max_degree")
			if err := validate.Struct(opts); err != nil {
				log.Sugar().Errorf("invalid generate options: %v", err)
				return err
			}
			degree, err := datastructure.DegreeFromString(opts.Degree)
			if err != nil {
				return err
			}
			if !degree.Fixed() {
				return errors.New("the hub degree to generate wheels for must be a fixed value")
			}

			confs, err := catalog.LoadConfigurations(opts.ConfDir, log)
			if err != nil {
				return err
			}
			sendCases, err := catalog.LoadRules(opts.SendCaseDir, log)
			if err != nil {
				return err
			}
			generator := discharging.NewGenerator(confs, sendCases, opts.MaxDegree, log)
			n, err := generator.Generate(degree.Lower(), opts.OutDir)
			if err != nil {
				return err
			}
			log.Sugar().Infof("wrote %d wheel files to %s", n, opts.OutDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Degree, "degree", "d", "", "hub degree to generate wheel files for")
	cmd.Flags().StringVarP(&opts.ConfDir, "conf", "c", "", "directory which includes configuration files")
	cmd.Flags().StringVarP(&opts.SendCaseDir, "send_case", "s", "", "directory which includes send case files (.rule extension)")
	cmd.Flags().IntVarP(&opts.MaxDegree, "max_degree", "m", 0, "maximum degree to check (e.g. degrees {5, 6, 7, 8, 9+} mean max_degree 9)")
	cmd.Flags().StringVarP(&opts.OutDir, "outdir", "o", "", "directory that wheel files are placed in")
	return cmd
}
