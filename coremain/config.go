package coremain

import (
	"github.com/pmkol/slist/mlog"
	"github.com/pmkol/slist/pkg/script"
)

type Config struct {
	Log    mlog.LogConfig `yaml:"log"`
	Script script.Script  `yaml:"script"`

	// Include lists sub config files. Their ops are replayed before
	// the ops of this file.
	Include []string `yaml:"include"`
}
