// Package validate checks registry object names the way Harbor core does
// before they are accepted into a catalog.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// projectRx is Harbor's project name rule: lowercase alphanumerics separated
// by single '.', '_' or '-'.
var projectRx = regexp.MustCompile(`^[a-z0-9]+(?:[._-][a-z0-9]+)*$`)

// componentRx matches one path component of a repository name.
var componentRx = regexp.MustCompile(`^[a-z0-9]+(?:(?:[._]|__|[-]*)[a-z0-9]+)*$`)

const (
	maxProjectName    = 255
	maxRepositoryName = 255
	maxChartName      = 255
)

// NonEmpty reports a missing required field by name.
func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ProjectName returns an error describing the first violated rule.
func ProjectName(v string) error {
	if err := NonEmpty("project name", v); err != nil {
		return err
	}
	if len(v) > maxProjectName {
		return fmt.Errorf("project name exceeds %d characters", maxProjectName)
	}
	if !projectRx.MatchString(v) {
		return fmt.Errorf("project name %q must match %s", v, projectRx.String())
	}
	return nil
}

// RepositoryName validates a full "project/path" repository name.
func RepositoryName(v string) error {
	if err := NonEmpty("repository name", v); err != nil {
		return err
	}
	if len(v) > maxRepositoryName {
		return fmt.Errorf("repository name exceeds %d characters", maxRepositoryName)
	}
	for _, part := range strings.Split(v, "/") {
		if !componentRx.MatchString(part) {
			return fmt.Errorf("repository name %q has invalid component %q", v, part)
		}
	}
	return nil
}

// ChartName allows the same charset and length as project names.
func ChartName(v string) error {
	if err := NonEmpty("chart name", v); err != nil {
		return err
	}
	if len(v) > maxChartName {
		return fmt.Errorf("chart name exceeds %d characters", maxChartName)
	}
	if !projectRx.MatchString(v) {
		return fmt.Errorf("chart name %q contains invalid characters", v)
	}
	return nil
}
