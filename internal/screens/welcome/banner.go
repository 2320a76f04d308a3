package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowtest/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗███╗   ██╗ ██████╗ ██╗    ██╗████████╗███████╗███████╗████████╗
 ██║ ██╔╝████╗  ██║██╔═══██╗██║    ██║╚══██╔══╝██╔════╝██╔════╝╚══██╔══╝
 █████╔╝ ██╔██╗ ██║██║   ██║██║ █╗ ██║   ██║   █████╗  ███████╗   ██║
 ██╔═██╗ ██║╚██╗██║██║   ██║██║███╗██║   ██║   ██╔══╝  ╚════██║   ██║
 ██║  ██╗██║ ╚████║╚██████╔╝╚███╔███╔╝   ██║   ███████╗███████║   ██║
 ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚══╝╚══╝    ╚═╝   ╚══════╝╚══════╝   ╚═╝`

const bannerCompact = "K N O W T E S T"

// RenderBanner returns the banner styled in the primary color, or a
// compact one for terminals narrower than 76 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 76 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
