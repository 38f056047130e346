package di

import (
	"testing"

	"github.com/kbukum/servicekit/errors"
)

func mailerFactories(tags ...string) []Factory {
	out := make([]Factory, 0, len(tags))
	for _, tag := range tags {
		out = append(out, Factory{
			Concrete: TypeOf[*SMTPMailer](),
			Supports: []TypeID{TypeOf[Mailer]()},
			Tag:      tag,
		})
	}
	return out
}

func TestChooseEmpty(t *testing.T) {
	d := NewDisambiguator()
	_, err := d.choose(nil, TypeOf[Mailer]())
	if !errors.HasCode(err, errors.ErrCodeNoServiceAvailable) {
		t.Fatalf("expected NO_SERVICE_AVAILABLE, got %v", err)
	}
}

func TestChooseSingleSkipsPolicy(t *testing.T) {
	d := NewDisambiguator()
	// A preference pointing elsewhere must not disturb a lone candidate.
	Prefer[*SendgridMailer, Mailer](d)

	chosen, err := d.choose(mailerFactories(""), TypeOf[Mailer]())
	if err != nil {
		t.Fatalf("choose failed: %v", err)
	}
	if chosen.Concrete != TypeOf[*SMTPMailer]() {
		t.Error("expected the only candidate")
	}
}

func TestChooseDuplicateTagMatches(t *testing.T) {
	d := NewDisambiguator()
	Prefer[*SMTPMailer, Mailer](d)

	// Two candidates with the identical concrete type and tag can only
	// come from a registration bug (the registry itself deduplicates).
	_, err := d.choose(mailerFactories("", ""), TypeOf[Mailer]())
	if !errors.HasCode(err, errors.ErrCodeDuplicateRegistration) {
		t.Fatalf("expected DUPLICATE_REGISTRATION, got %v", err)
	}
}

func TestApproveWithoutRequirement(t *testing.T) {
	d := NewDisambiguator()
	if err := d.approve(mailerFactories("")[0], TypeOf[Mailer]()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestApproveTagMismatch(t *testing.T) {
	d := NewDisambiguator()
	RequireWithTag[*SMTPMailer, Mailer](d, "bulk")

	err := d.approve(mailerFactories("")[0], TypeOf[Mailer]())
	if !errors.HasCode(err, errors.ErrCodeRequirementViolated) {
		t.Fatalf("expected REQUIREMENT_VIOLATED, got %v", err)
	}
}

func TestPreferenceAndRequirementAccessors(t *testing.T) {
	d := NewDisambiguator()
	Prefer[*SMTPMailer, Mailer](d)

	if _, ok := d.Preference(TypeOf[Mailer]()); !ok {
		t.Error("expected preference recorded")
	}
	if _, ok := d.Requirement(TypeOf[Mailer]()); ok {
		t.Error("expected no requirement")
	}
}
