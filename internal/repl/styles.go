package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// responseMarkers 返回包裹流式回复的 SGR 前后缀。
// 流式输出逐块写出，不能整体 Render，只能前后各写一次控制序列。
func responseMarkers(profile termenv.Profile) (string, string) {
	if profile == termenv.Ascii {
		return "", ""
	}
	st := termenv.Style{}.Foreground(profile.Color("10"))

	const sentinel = "\x00"
	styled := st.Styled(sentinel)
	idx := strings.Index(styled, sentinel)
	if idx < 0 {
		return "", ""
	}
	return styled[:idx], styled[idx+len(sentinel):]
}
