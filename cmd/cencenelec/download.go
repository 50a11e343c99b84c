package main

import (
	"fmt"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	name, err := deps.Downloader.Download(deps.Ctx, deps.NewDriver(c.Dir), c.Dir, c.URL)
	if err != nil {
		return err
	}

	if name == "" {
		return fmt.Errorf("download of %s did not produce a regular file in %s", c.URL, c.Dir)
	}

	fmt.Fprintln(deps.Stdout, name)
	return nil
}
