package ui

import "image/color"

// Theme colors - these are variables so they can be modified for dark mode
var (
	colWhite       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray        = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray   = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colDirBlue     = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
	colSelected    = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colSidebar     = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colDisabled    = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	colAccent      = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colPage        = color.NRGBA{R: 250, G: 250, B: 252, A: 255}
	colCard        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colPlaceholder = color.NRGBA{R: 230, G: 232, B: 236, A: 255}
	colHoverShade  = color.NRGBA{R: 0, G: 0, B: 0, A: 110}

	// Mask canvas is always white with a red brush
	colSurface = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBrush   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

	// Config error banner colors
	colErrorBannerBg   = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colErrorBannerText = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	// UI Polish colors
	colShadow         = color.NRGBA{R: 0, G: 0, B: 0, A: 60}
	colBackdrop       = color.NRGBA{R: 0, G: 0, B: 0, A: 180}
	colPrimaryBtnText = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colDangerBtn      = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colSaveBtn        = color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	colNeutralBtn     = color.NRGBA{R: 107, G: 114, B: 128, A: 255}
)

// applyDarkColors switches the palette for the "dark" theme.
func applyDarkColors() {
	colWhite = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colBlack = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colGray = color.NRGBA{R: 160, G: 160, B: 165, A: 255}
	colLightGray = color.NRGBA{R: 70, G: 70, B: 76, A: 255}
	colDirBlue = color.NRGBA{R: 140, G: 170, B: 255, A: 255}
	colSelected = color.NRGBA{R: 45, G: 65, B: 110, A: 255}
	colSidebar = color.NRGBA{R: 38, G: 38, B: 42, A: 255}
	colPage = color.NRGBA{R: 24, G: 24, B: 27, A: 255}
	colCard = color.NRGBA{R: 40, G: 40, B: 45, A: 255}
	colPlaceholder = color.NRGBA{R: 55, G: 55, B: 60, A: 255}
}
