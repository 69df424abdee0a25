package mitigation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Generator is a text-generation provider.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ServiceConfig holds configuration for the mitigation service.
type ServiceConfig struct {
	// Generator is optional; without one every briefing uses the
	// deterministic template.
	Generator Generator

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service generates mitigation briefings with graceful degradation.
type Service struct {
	generator Generator
	logger    zerolog.Logger
}

// NewService creates a new mitigation service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		generator: cfg.Generator,
		logger:    cfg.Logger,
	}
}

// Brief produces a mitigation briefing for the scenario. Generator failures
// never propagate: the deterministic template stands in and the failure is
// logged.
func (s *Service) Brief(ctx context.Context, sc Scenario) (Briefing, error) {
	if sc.AsteroidName == "" && sc.DiameterMeters == 0 {
		return Briefing{}, ErrEmptyScenario
	}

	if s.generator == nil {
		return s.fallback(sc), nil
	}

	text, err := s.generator.Generate(ctx, buildPrompt(sc))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("generator", s.generator.Name()).
			Str("asteroid", sc.AsteroidName).
			Msg("generator failed, using fallback briefing")
		return s.fallback(sc), nil
	}

	headline, body := splitBriefing(text)
	return Briefing{
		Headline: headline,
		Body:     body,
		Source:   s.generator.Name(),
	}, nil
}

// buildPrompt renders the scenario into the generation prompt. The first
// line of the response is treated as the headline.
func buildPrompt(sc Scenario) string {
	var b strings.Builder

	b.WriteString("You are a planetary defense coordinator. Write a concise mitigation briefing for the following asteroid impact scenario. ")
	b.WriteString("Start with a single headline line, then the briefing body covering deflection options, civil protection and timeline.\n\n")

	fmt.Fprintf(&b, "Asteroid: %s\n", sc.AsteroidName)
	fmt.Fprintf(&b, "Diameter: %.0f m\n", sc.DiameterMeters)
	fmt.Fprintf(&b, "Velocity: %.1f km/s\n", sc.VelocityKmPerSec)
	fmt.Fprintf(&b, "Impact energy: %.1f megatons TNT\n", sc.EnergyMegatons)
	if sc.LocationName != "" {
		fmt.Fprintf(&b, "Impact location: %s\n", sc.LocationName)
	}
	if sc.PopulationAtRisk > 0 {
		fmt.Fprintf(&b, "Population at risk: %d\n", sc.PopulationAtRisk)
	}
	if sc.YearsToImpact > 0 {
		fmt.Fprintf(&b, "Warning time: %.1f years\n", sc.YearsToImpact)
	} else {
		b.WriteString("Warning time: none (impact imminent)\n")
	}

	return b.String()
}

// splitBriefing separates the headline line from the body.
func splitBriefing(text string) (headline, body string) {
	text = strings.TrimSpace(text)
	line, rest, found := strings.Cut(text, "\n")
	if !found {
		return line, line
	}
	return strings.TrimSpace(line), strings.TrimSpace(rest)
}

// fallback writes the deterministic template briefing.
func (s *Service) fallback(sc Scenario) Briefing {
	name := sc.AsteroidName
	if name == "" {
		name = "the object"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s, %.0f m diameter at %.1f km/s, releasing roughly %.1f megatons.\n\n",
		name, sc.DiameterMeters, sc.VelocityKmPerSec, sc.EnergyMegatons)

	if sc.YearsToImpact >= 5 {
		b.WriteString("With years of warning, a kinetic impactor mission is the primary option: a small velocity change applied early moves the impact point off Earth entirely. ")
		b.WriteString("A gravity tractor can refine the deflection. Civil protection remains the contingency, not the plan.\n")
	} else if sc.YearsToImpact > 0 {
		b.WriteString("Warning time is too short for a deflection campaign. Priorities are precise impact-corridor prediction, phased evacuation of the corridor, and hardening of critical infrastructure.\n")
	} else {
		b.WriteString("With no warning time, response is entirely civil protection: immediate evacuation of the blast and thermal radii, shelter orders beyond them, and post-impact search and rescue staging outside the damage rings.\n")
	}

	if sc.PopulationAtRisk > 0 {
		fmt.Fprintf(&b, "\nEstimated %d people are inside the damage rings; evacuation planning should start from the severe-blast radius outward.\n", sc.PopulationAtRisk)
	}

	return Briefing{
		Headline: fmt.Sprintf("Mitigation briefing: %s", name),
		Body:     strings.TrimSpace(b.String()),
		Source:   "fallback",
	}
}
