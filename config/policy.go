package config

import (
	"github.com/kbukum/servicekit/di"
	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/validation"
)

// Binding names one interface-to-service edge of the resolution policy.
// Names use the kebab-case derived form ("mailer", "redis-cache"), the
// same form the registry's name table indexes.
type Binding struct {
	Interface string `yaml:"interface" mapstructure:"interface" validate:"required"`
	Service   string `yaml:"service" mapstructure:"service" validate:"required"`
	Tag       string `yaml:"tag" mapstructure:"tag"`
}

// ResolverConfig is the declarative slice of the resolution policy:
// preferred and required bindings by service name, plus an optional
// override of the singleton lifetime default.
type ResolverConfig struct {
	Singletons *bool     `yaml:"singletons" mapstructure:"singletons"`
	Prefer     []Binding `yaml:"prefer" mapstructure:"prefer"`
	Require    []Binding `yaml:"require" mapstructure:"require"`
}

// Validate checks every binding names both sides of its edge.
func (r *ResolverConfig) Validate() error {
	for _, b := range r.Prefer {
		if err := validation.Validate(&b); err != nil {
			return err
		}
	}
	for _, b := range r.Require {
		if err := validation.Validate(&b); err != nil {
			return err
		}
	}
	return nil
}

// Apply resolves the configured names against the registry's name table
// and installs the resulting preferences and requirements. Every name
// must map to exactly one registered type; collisions and unknown names
// abort the whole policy.
func (r *ResolverConfig) Apply(table *di.NameTable, d *di.Disambiguator) error {
	for _, b := range r.Prefer {
		iface, concrete, err := r.lookup(table, b)
		if err != nil {
			return err
		}
		if b.Tag != "" {
			d.PreferTagged(concrete, b.Tag, iface)
		} else {
			d.PreferType(concrete, iface)
		}
	}
	for _, b := range r.Require {
		iface, concrete, err := r.lookup(table, b)
		if err != nil {
			return err
		}
		if b.Tag != "" {
			d.RequireTagged(concrete, b.Tag, iface)
		} else {
			d.RequireType(concrete, iface)
		}
	}
	return nil
}

func (r *ResolverConfig) lookup(table *di.NameTable, b Binding) (iface, concrete di.TypeID, err error) {
	iface, err = table.Lookup(b.Interface)
	if err != nil {
		return iface, concrete, errors.InvalidConfig("resolver binding for interface " + b.Interface).WithCause(err)
	}
	concrete, err = table.Lookup(b.Service)
	if err != nil {
		return iface, concrete, errors.InvalidConfig("resolver binding for service " + b.Service).WithCause(err)
	}
	return iface, concrete, nil
}
