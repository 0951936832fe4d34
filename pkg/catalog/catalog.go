package catalog

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/edge-coloring/projective-discharging/pkg"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func listFiles(dirname, extension string) ([]string, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dirname)
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && filepath.Ext(entry.Name()) == extension {
			files = append(files, filepath.Join(dirname, entry.Name()))
		}
	}
	return files, nil
}

// LoadConfigurations parses every .conf file in dirname. Files are parsed
// concurrently but the returned order is the directory order.
func LoadConfigurations(dirname string, logger *zap.Logger) ([]*Configuration, error) {
	logger.Sugar().Infof("reading confs from %s ...", dirname)
	files, err := listFiles(dirname, pkg.CONF_EXTENSION)
	if err != nil {
		return nil, err
	}
	confs := make([]*Configuration, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			conf, err := ReadConfFile(file)
			if err != nil {
				return err
			}
			confs[i] = conf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return confs, nil
}

// LoadRules parses every .rule file in dirname, in directory order.
func LoadRules(dirname string, logger *zap.Logger) ([]*Rule, error) {
	logger.Sugar().Infof("reading rules from %s ...", dirname)
	files, err := listFiles(dirname, pkg.RULE_EXTENSION)
	if err != nil {
		return nil, err
	}
	rules := make([]*Rule, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			rule, err := ReadRuleFile(file)
			if err != nil {
				return err
			}
			rules[i] = rule
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rules, nil
}
