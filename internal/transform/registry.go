package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_investments", createSetInvestments)
	registry.Register("add_investments", createAddInvestments)
	registry.Register("set_rent", createSetRent)
	registry.Register("raise_salary", createRaiseSalary)
	registry.Register("set_metro", createSetMetro)
	registry.Register("set_pf", createSetPF)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_investments:amount=150000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetInvestments(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("set_investments", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetInvestments{Amount: amount}, nil
}

func createAddInvestments(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("add_investments", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddInvestments{Amount: amount}, nil
}

func createSetRent(params map[string]string) (InputTransform, error) {
	monthly, err := requireDecimal("set_rent", params, "monthly")
	if err != nil {
		return nil, err
	}
	return &SetRent{Monthly: monthly}, nil
}

func createRaiseSalary(params map[string]string) (InputTransform, error) {
	percent, err := requireDecimal("raise_salary", params, "percent")
	if err != nil {
		return nil, err
	}
	return &RaiseSalary{Percent: percent}, nil
}

func createSetMetro(params map[string]string) (InputTransform, error) {
	s, ok := params["metro"]
	if !ok {
		return nil, fmt.Errorf("set_metro requires 'metro' parameter")
	}
	metro, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid metro value: %w", err)
	}
	return &SetMetro{Metro: metro}, nil
}

func createSetPF(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("set_pf", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetPF{Amount: amount}, nil
}
