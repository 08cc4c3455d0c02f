package prediction

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harvestguru/hg-cli/internal/domain"
)

type RenderOptions struct {
	// CropName labels the result; optional.
	CropName string
	// District labels the district-average comparison; optional.
	District string
}

// View formats the result without running a bubbletea program, for
// embedding inside an already-running view.
func View(result domain.PredictionResult, opts RenderOptions) string {
	return renderView(result, opts, newStyles())
}

func renderView(result domain.PredictionResult, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(resultTitle(opts)),
		s.yield.Render(fmt.Sprintf("%.2f %s", result.PredictedYield, result.YieldUnit)),
		comparisonLine(result, opts, s),
		confidenceLine(result.ConfidenceScore, s),
	}

	if len(result.Recommendations) > 0 {
		lines = append(lines, s.section.Render(s.header.Render("Recommendations")))
		for _, recommendation := range result.Recommendations {
			lines = append(lines, s.detail.Render("  • "+recommendation))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func resultTitle(opts RenderOptions) string {
	if opts.CropName != "" {
		return fmt.Sprintf("Predicted yield for %s", opts.CropName)
	}
	return "Predicted yield"
}

func comparisonLine(result domain.PredictionResult, opts RenderOptions, s styles) string {
	district := opts.District
	if district == "" {
		district = "district"
	}

	direction := "above"
	style := s.positive
	if result.ComparisonPercentage < 0 {
		direction = "below"
		style = s.negative
	}

	comparison := style.Render(fmt.Sprintf("%.1f%% %s", math.Abs(result.ComparisonPercentage), direction))
	average := s.detail.Render(fmt.Sprintf("(%s average: %.2f)", district, result.DistrictAverage))

	return lipgloss.JoinHorizontal(lipgloss.Top, comparison, " ", average)
}

func confidenceLine(score float64, s styles) string {
	label := s.limitKey.Render("confidence:")
	bar := renderConfidenceBar(score, 24, s)
	value := s.detail.Render(fmt.Sprintf("%.1f%%", clampPercent(score)))

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", value)
}

func renderConfidenceBar(score float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := clampPercent(score) / 100.0
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	empty := width - filled

	return s.barBracket.Render("[") +
		s.barFill.Render(strings.Repeat("█", filled)) +
		s.barEmpty.Render(strings.Repeat("░", empty)) +
		s.barBracket.Render("]")
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
