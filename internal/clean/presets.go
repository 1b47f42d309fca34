package clean

import (
	"fmt"

	"github.com/rapihdata/rapih/internal/domain"
)

// ErrUnknownPreset is returned for preset names outside the published set.
var ErrUnknownPreset = fmt.Errorf("unknown cleaning preset")

// PresetOptions expands a preset name into its CleanOptions bundle. Presets
// only toggle stages of the one pipeline; quick touches structure only,
// standard adds per-cell normalization, financial adds recalculation, and
// full enables everything including typo correction.
func PresetOptions(preset domain.Preset) (domain.CleanOptions, error) {
	base := domain.CleanOptions{
		RemoveEmptyRows:  true,
		RemoveDuplicates: true,
		TrimWhitespace:   true,
	}

	switch preset {
	case domain.PresetQuick:
		return base.Normalize(), nil
	case domain.PresetStandard:
		base.NormalizeCase = true
		base.StandardizeDates = true
		base.StandardizePhones = true
		return base.Normalize(), nil
	case domain.PresetFinancial:
		base.StandardizeDates = true
		base.FixCalculations = true
		return base.Normalize(), nil
	case domain.PresetFull:
		base.NormalizeCase = true
		base.StandardizeDates = true
		base.StandardizePhones = true
		base.FixCalculations = true
		base.FixTypos = true
		return base.Normalize(), nil
	default:
		return domain.CleanOptions{}, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
}
