package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Field colors: blue for prompts, emerald for answers.
	colorPrompt = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorAnswer = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorError  = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

var (
	stylePromptLabel = lipgloss.NewStyle().Foreground(colorPrompt).Bold(true)
	styleAnswerLabel = lipgloss.NewStyle().Foreground(colorAnswer).Bold(true)

	styleTitle       = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta        = lipgloss.NewStyle().Foreground(colorDim)
	styleTimestamp   = lipgloss.NewStyle().Foreground(colorBright)
	stylePlaceholder = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	styleError       = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
