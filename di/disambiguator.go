package di

import "github.com/kbukum/servicekit/errors"

// ServiceChoice names a concrete implementation, optionally tag-qualified.
type ServiceChoice struct {
	Concrete TypeID
	Tag      string
}

// Disambiguator holds the preference and requirement maps consulted when
// resolution finds more than one candidate factory. Preferences break
// ties; requirements additionally veto any resolution that does not
// match, even an unambiguous one.
type Disambiguator struct {
	preferences  map[TypeID]ServiceChoice
	requirements map[TypeID]ServiceChoice
}

// NewDisambiguator creates an empty policy.
func NewDisambiguator() *Disambiguator {
	return &Disambiguator{
		preferences:  make(map[TypeID]ServiceChoice),
		requirements: make(map[TypeID]ServiceChoice),
	}
}

// PreferType records that iface should resolve to the untagged
// registration of concrete when several candidates match.
func (d *Disambiguator) PreferType(concrete, iface TypeID) {
	d.PreferTagged(concrete, "", iface)
}

// PreferTagged records a tag-qualified preference for iface.
func (d *Disambiguator) PreferTagged(concrete TypeID, tag string, iface TypeID) {
	d.preferences[iface] = ServiceChoice{Concrete: concrete, Tag: tag}
}

// RequireType records a hard requirement: iface must resolve to the
// untagged registration of concrete, or resolution fails.
func (d *Disambiguator) RequireType(concrete, iface TypeID) {
	d.RequireTagged(concrete, "", iface)
}

// RequireTagged records a tag-qualified requirement for iface.
func (d *Disambiguator) RequireTagged(concrete TypeID, tag string, iface TypeID) {
	d.requirements[iface] = ServiceChoice{Concrete: concrete, Tag: tag}
}

// Preference returns the configured preference for iface, if any.
func (d *Disambiguator) Preference(iface TypeID) (ServiceChoice, bool) {
	c, ok := d.preferences[iface]
	return c, ok
}

// Requirement returns the configured requirement for iface, if any.
func (d *Disambiguator) Requirement(iface TypeID) (ServiceChoice, bool) {
	c, ok := d.requirements[iface]
	return c, ok
}

// choose narrows the available factories to exactly one. A single
// candidate never consults policy; multiple candidates require a
// preference naming one of them.
func (d *Disambiguator) choose(available []Factory, iface TypeID) (Factory, error) {
	switch len(available) {
	case 0:
		return Factory{}, errors.NoServiceAvailable(iface.String())
	case 1:
		return available[0], nil
	}

	pref, ok := d.preferences[iface]
	if !ok {
		candidates := make([]string, 0, len(available))
		for _, f := range available {
			candidates = append(candidates, f.Concrete.String())
		}
		return Factory{}, errors.AmbiguousService(iface.String(), candidates)
	}

	var matches []Factory
	for _, f := range available {
		if f.Concrete == pref.Concrete && f.Tag == pref.Tag {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return Factory{}, errors.NoServiceAvailable(iface.String())
	case 1:
		return matches[0], nil
	default:
		return Factory{}, errors.DuplicateRegistration(pref.Concrete.String())
	}
}

// approve enforces the requirement for iface against the chosen factory.
// It runs even when disambiguation picked unambiguously: requirements are
// hard policy, independent of how many candidates existed.
func (d *Disambiguator) approve(chosen Factory, iface TypeID) error {
	req, ok := d.requirements[iface]
	if !ok {
		return nil
	}
	if chosen.Concrete != req.Concrete || chosen.Tag != req.Tag {
		return errors.RequirementViolated(iface.String(), chosen.Concrete.String(), req.Concrete.String())
	}
	return nil
}

// Prefer records a preference using static types.
func Prefer[C any, I any](d *Disambiguator) {
	d.PreferType(TypeOf[C](), TypeOf[I]())
}

// PreferWithTag records a tag-qualified preference using static types.
func PreferWithTag[C any, I any](d *Disambiguator, tag string) {
	d.PreferTagged(TypeOf[C](), tag, TypeOf[I]())
}

// Require records a requirement using static types.
func Require[C any, I any](d *Disambiguator) {
	d.RequireType(TypeOf[C](), TypeOf[I]())
}

// RequireWithTag records a tag-qualified requirement using static types.
func RequireWithTag[C any, I any](d *Disambiguator, tag string) {
	d.RequireTagged(TypeOf[C](), tag, TypeOf[I]())
}
