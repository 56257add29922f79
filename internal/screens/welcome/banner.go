package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grindstone/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ██╗███╗   ██╗██████╗ ███████╗████████╗ ██████╗ ███╗   ██╗███████╗
██╔════╝ ██╔══██╗██║████╗  ██║██╔══██╗██╔════╝╚══██╔══╝██╔═══██╗████╗  ██║██╔════╝
██║  ███╗██████╔╝██║██╔██╗ ██║██║  ██║███████╗   ██║   ██║   ██║██╔██╗ ██║█████╗
██║   ██║██╔══██╗██║██║╚██╗██║██║  ██║╚════██║   ██║   ██║   ██║██║╚██╗██║██╔══╝
╚██████╔╝██║  ██║██║██║ ╚████║██████╔╝███████║   ██║   ╚██████╔╝██║ ╚████║███████╗
 ╚═════╝ ╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝ ╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═══╝╚══════╝`

const bannerCompact = "G R I N D S T O N E"

// RenderBanner returns the GRINDSTONE banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the full art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 88 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
