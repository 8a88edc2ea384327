package company

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"gopkg.in/yaml.v3"
)

// Source looks up company intelligence. A nil record with a nil error means
// the company is unknown.
type Source interface {
	Lookup(ctx context.Context, name string) (*models.CompanyIntel, error)
}

//go:embed profiles/*.yaml
var profileFS embed.FS

type profileFile struct {
	Companies []models.CompanyIntel `yaml:"companies"`
}

// ProfileSource serves the embedded company catalogue.
type ProfileSource struct {
	byKey map[string]models.CompanyIntel
	names []string
}

func NewProfileSource() (*ProfileSource, error) {
	ps := &ProfileSource{byKey: make(map[string]models.CompanyIntel)}
	if err := ps.load(); err != nil {
		return nil, fmt.Errorf("failed to load company profiles: %w", err)
	}
	return ps, nil
}

// Lookup matches the company name or one of its aliases, ignoring case and
// surrounding whitespace. The returned record is a copy.
func (ps *ProfileSource) Lookup(ctx context.Context, name string) (*models.CompanyIntel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	intel, ok := ps.byKey[NormalizeName(name)]
	if !ok {
		return nil, nil
	}
	out := intel.Clone()
	return &out, nil
}

// Names lists the catalogue's canonical company names, sorted.
func (ps *ProfileSource) Names() []string {
	out := make([]string, len(ps.names))
	copy(out, ps.names)
	return out
}

func (ps *ProfileSource) load() error {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return fmt.Errorf("failed to read profiles directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := profileFS.ReadFile("profiles/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read profile file %s: %w", entry.Name(), err)
		}

		var file profileFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse profile file %s: %w", entry.Name(), err)
		}

		for _, intel := range file.Companies {
			if err := ps.add(intel); err != nil {
				return fmt.Errorf("%s: %w", entry.Name(), err)
			}
		}
	}

	sort.Strings(ps.names)
	return nil
}

func (ps *ProfileSource) add(intel models.CompanyIntel) error {
	if strings.TrimSpace(intel.Name) == "" {
		return fmt.Errorf("company profile without a name")
	}
	intel.Tier = strings.ToLower(strings.TrimSpace(intel.Tier))
	intel.Industry = strings.ToLower(strings.TrimSpace(intel.Industry))

	keys := append([]string{intel.Name}, intel.Aliases...)
	for _, key := range keys {
		key = NormalizeName(key)
		if _, dup := ps.byKey[key]; dup {
			return fmt.Errorf("duplicate company key %q", key)
		}
		ps.byKey[key] = intel
	}
	ps.names = append(ps.names, intel.Name)
	return nil
}

// NormalizeName lowercases and collapses whitespace in a company name.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
