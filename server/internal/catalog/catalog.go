// Package catalog holds the in-memory registry content served by the fixture
// search endpoint and implements Harbor's keyword matching over it.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/youhong316/harbor/server/internal/validate"
)

//go:embed sample.yaml
var sampleCatalog []byte

// Catalog is the file format: a list of projects with their repositories and charts.
type Catalog struct {
	Projects []Project `json:"projects" yaml:"projects"`
}

// Project is one registry project.
type Project struct {
	ID           int64        `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Public       bool         `json:"public" yaml:"public"`
	OwnerID      int          `json:"owner_id" yaml:"owner_id"`
	OwnerName    string       `json:"owner_name" yaml:"owner_name"`
	CreationTime time.Time    `json:"creation_time" yaml:"creation_time"`
	Repositories []Repository `json:"repositories" yaml:"repositories"`
	Charts       []Chart      `json:"charts" yaml:"charts"`
}

// Repository is an image repository inside a project. Name is the full "project/repo" path.
type Repository struct {
	Name      string   `json:"name" yaml:"name"`
	PullCount int64    `json:"pull_count" yaml:"pull_count"`
	Tags      []string `json:"tags" yaml:"tags"`
}

// Chart is a helm chart inside a project.
type Chart struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	AppVersion  string `json:"app_version" yaml:"app_version"`
	Description string `json:"description" yaml:"description"`
}

// Sample returns the built-in catalog.
func Sample() (*Catalog, error) {
	return Parse(sampleCatalog, ".yaml")
}

// Load reads a catalog from a .json, .yaml or .yml file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data according to ext and validates the result.
func Parse(data []byte, ext string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) normalize() error {
	seen := make(map[string]bool, len(c.Projects))
	for i := range c.Projects {
		p := &c.Projects[i]
		if err := validate.ProjectName(p.Name); err != nil {
			return fmt.Errorf("project %d: %w", i, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate project %q", p.Name)
		}
		seen[p.Name] = true
		if p.ID == 0 {
			p.ID = int64(i + 1)
		}
		for j := range p.Repositories {
			r := &p.Repositories[j]
			if r.Name == "" {
				return fmt.Errorf("project %q: repository %d has no name", p.Name, j)
			}
			if !strings.HasPrefix(r.Name, p.Name+"/") {
				r.Name = p.Name + "/" + r.Name
			}
			if err := validate.RepositoryName(r.Name); err != nil {
				return fmt.Errorf("project %q: %w", p.Name, err)
			}
		}
		for _, ch := range p.Charts {
			if err := validate.ChartName(ch.Name); err != nil {
				return fmt.Errorf("project %q: %w", p.Name, err)
			}
		}
	}
	sort.SliceStable(c.Projects, func(i, j int) bool { return c.Projects[i].Name < c.Projects[j].Name })
	return nil
}
