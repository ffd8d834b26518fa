package clues

import (
	"fmt"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// This package owns every clue-type-specific shape check. Both the create and
// edit submission paths call ValidateEvidence so the two can not drift apart.

// ValidateSnapshot checks the authoring fields of a clue snapshot before it is
// sequenced into a game.
func ValidateSnapshot(c models.ClueSnapshot) error {
	if c.Title == "" {
		return fmt.Errorf("clue %q: title is required", c.ClueID)
	}
	if c.RequiredPhotos < 0 {
		return fmt.Errorf("clue %q: required_photos must not be negative", c.ClueID)
	}

	switch c.Type {
	case models.ClueRouteInfo:
		if c.Description == "" {
			return fmt.Errorf("route-info clue %q: description is required", c.ClueID)
		}
	case models.ClueDetour:
		if c.OptionATitle == "" || c.OptionBTitle == "" {
			return fmt.Errorf("detour clue %q: both option titles are required", c.ClueID)
		}
	case models.ClueRoadBlock:
		if c.SoloTask == "" {
			return fmt.Errorf("road-block clue %q: solo task is required", c.ClueID)
		}
	default:
		return fmt.Errorf("clue %q: unrecognized clue type %q", c.ClueID, c.Type)
	}

	return nil
}

// ValidateEvidence checks a submission's evidence against the clue snapshot it
// answers. The photo count must match requiredPhotos exactly, not "at least".
func ValidateEvidence(c models.ClueSnapshot, ev models.Evidence) error {
	if ev.TextProof == "" {
		return fmt.Errorf("text proof is required")
	}
	if len(ev.PhotoURLs) != c.RequiredPhotos {
		return fmt.Errorf("clue requires exactly %d photos, got %d", c.RequiredPhotos, len(ev.PhotoURLs))
	}

	switch c.Type {
	case models.ClueRouteInfo:
		// no extra fields
	case models.ClueDetour:
		if ev.DetourChoice != models.DetourOptionA && ev.DetourChoice != models.DetourOptionB {
			return fmt.Errorf("detour choice must be %q or %q, got %q",
				models.DetourOptionA, models.DetourOptionB, ev.DetourChoice)
		}
	case models.ClueRoadBlock:
		if ev.RoadblockPlayer == "" {
			return fmt.Errorf("road-block clue requires the solo player name")
		}
	default:
		return fmt.Errorf("unrecognized clue type %q", c.Type)
	}

	return nil
}
