package models

// company tiers and industries the scoring policy reacts to
const (
	TierTopTech    = "top-tech"
	TierEnterprise = "enterprise"
	TierStartup    = "startup"

	IndustryTechnology = "technology"
	IndustryECommerce  = "e-commerce"
	IndustryLogistics  = "logistics"
)

// CompanyIntel describes a target company. A nil *CompanyIntel means the
// company is unknown and every consumer must fall back to neutral behavior.
type CompanyIntel struct {
	Name            string   `json:"name" yaml:"name"`
	Aliases         []string `json:"aliases,omitempty" yaml:"aliases"`
	Industry        string   `json:"industry" yaml:"industry"`
	Tier            string   `json:"tier" yaml:"tier"`
	Difficulty      string   `json:"difficulty" yaml:"difficulty"`
	TechStack       []string `json:"techStack" yaml:"tech_stack"`
	Culture         []string `json:"culture" yaml:"culture"`
	Values          []string `json:"values" yaml:"values"`
	FocusAreas      []string `json:"focusAreas,omitempty" yaml:"focus_areas"`
	PreparationTips []string `json:"preparationTips" yaml:"preparation_tips"`
}

func (c CompanyIntel) Clone() CompanyIntel {
	out := c
	out.Aliases = cloneSlice(c.Aliases)
	out.TechStack = cloneSlice(c.TechStack)
	out.Culture = cloneSlice(c.Culture)
	out.Values = cloneSlice(c.Values)
	out.FocusAreas = cloneSlice(c.FocusAreas)
	out.PreparationTips = cloneSlice(c.PreparationTips)
	return out
}

// CultureKeywords merges culture and value keywords in declaration order.
func (c CompanyIntel) CultureKeywords() []string {
	out := make([]string, 0, len(c.Culture)+len(c.Values))
	out = append(out, c.Culture...)
	return append(out, c.Values...)
}
