package main

import (
	"fmt"

	"github.com/guigolab/readstats"
)

func buildVersion(version, commit, date string) string {
	if version == "" {
		version = readstats.Version()
	}
	var result = fmt.Sprintf("version: %s", version)
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}
