package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common salary scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Investment templates
	registry.Register(Template{
		Name:        "invest_150k",
		Description: "Declare ₹1,50,000 of deductible investments",
		Transforms: []InputTransform{
			&SetInvestments{Amount: decimal.NewFromInt(150000)},
		},
	})

	registry.Register(Template{
		Name:        "invest_200k",
		Description: "Declare ₹2,00,000 of deductible investments",
		Transforms: []InputTransform{
			&SetInvestments{Amount: decimal.NewFromInt(200000)},
		},
	})

	registry.Register(Template{
		Name:        "add_50k",
		Description: "Add ₹50,000 to declared investments",
		Transforms: []InputTransform{
			&AddInvestments{Amount: decimal.NewFromInt(50000)},
		},
	})

	registry.Register(Template{
		Name:        "no_investments",
		Description: "Declare no investments",
		Transforms: []InputTransform{
			&SetInvestments{Amount: decimal.Zero},
		},
	})

	// Rent and city templates
	registry.Register(Template{
		Name:        "no_rent",
		Description: "Pay no rent",
		Transforms: []InputTransform{
			&SetRent{Monthly: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "move_metro",
		Description: "Move to a metro city",
		Transforms: []InputTransform{
			&SetMetro{Metro: true},
		},
	})

	registry.Register(Template{
		Name:        "move_non_metro",
		Description: "Move to a non-metro city",
		Transforms: []InputTransform{
			&SetMetro{Metro: false},
		},
	})

	// Salary templates
	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Raise gross and basic salary by 10%",
		Transforms: []InputTransform{
			&RaiseSalary{Percent: decimal.NewFromInt(10)},
		},
	})

	registry.Register(Template{
		Name:        "raise_20pct",
		Description: "Raise gross and basic salary by 20%",
		Transforms: []InputTransform{
			&RaiseSalary{Percent: decimal.NewFromInt(20)},
		},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "raise_10pct_invest_200k",
		Description: "Raise salary by 10% and declare ₹2,00,000 of investments",
		Transforms: []InputTransform{
			&RaiseSalary{Percent: decimal.NewFromInt(10)},
			&SetInvestments{Amount: decimal.NewFromInt(200000)},
		},
	})

	registry.Register(Template{
		Name:        "minimal_claims",
		Description: "Claim nothing beyond the standard deduction",
		Transforms: []InputTransform{
			&SetInvestments{Amount: decimal.Zero},
			&SetRent{Monthly: decimal.Zero},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base inputs
func ApplyTemplate(base domain.TaxInputs, template Template) (domain.TaxInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a list of template names or transform specs.
// Entries are separated by semicolons, or by commas when no entry is a
// transform spec (specs use commas between their parameters).
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	sep := ","
	if strings.Contains(templateList, ";") || strings.Contains(templateList, ":") {
		sep = ";"
	}

	parts := strings.Split(templateList, sep)
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// Resolve turns one entry of a template list into a template. An entry
// containing ':' is parsed as an ad-hoc transform spec.
func Resolve(templates *TemplateRegistry, transforms *TransformRegistry, entry string) (Template, error) {
	if strings.Contains(entry, ":") {
		t, err := transforms.ParseTransformSpec(entry)
		if err != nil {
			return Template{}, err
		}
		return Template{Name: entry, Description: t.Description(), Transforms: []InputTransform{t}}, nil
	}

	t, ok := templates.Get(entry)
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q", entry)
	}
	return t, nil
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Investments":            {},
		"Rent and City":          {},
		"Salary":                 {},
		"Combination Strategies": {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.Count(name, "_") > 2 || name == "minimal_claims":
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		case strings.HasPrefix(name, "invest_"), strings.HasPrefix(name, "add_"), name == "no_investments":
			categories["Investments"] = append(categories["Investments"], template)
		case strings.HasPrefix(name, "move_"), name == "no_rent":
			categories["Rent and City"] = append(categories["Rent and City"], template)
		case strings.HasPrefix(name, "raise_"):
			categories["Salary"] = append(categories["Salary"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range []string{"Investments", "Rent and City", "Salary", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  itax compare salary.yaml --with invest_150k,raise_10pct\n")
	sb.WriteString("  itax compare salary.yaml --with 'set_rent:monthly=20000;no_investments'\n")

	return sb.String()
}
