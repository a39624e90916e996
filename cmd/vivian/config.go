package main

import (
	"fmt"

	"github.com/leocbehe/vivian"
	"github.com/leocbehe/vivian/yaml"
)

// Run prints the configuration after the config file and global flags
// were applied.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	if err := yaml.EncodeConfig(deps.Stdout, deps.Config); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vivian.ErrorMessage(err))
		return err
	}
	return nil
}
