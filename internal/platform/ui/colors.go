// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de vita.
var (
	SproutGreen = pterm.NewRGB(76, 175, 80)   // cabeceras
	BerryRed    = pterm.NewRGB(211, 47, 47)   // errores
	PollenAmber = pterm.NewRGB(255, 179, 0)   // avisos
	BarkGray    = pterm.NewRGB(120, 120, 120) // texto secundario
	LagoonTeal  = pterm.NewRGB(0, 150, 136)   // éxito
)

var (
	StylePrimary   = SproutGreen.ToRGBStyle()
	StyleSuccess   = LagoonTeal.ToRGBStyle()
	StyleWarning   = PollenAmber.ToRGBStyle()
	StyleError     = BerryRed.ToRGBStyle()
	StyleSecondary = BarkGray.ToRGBStyle()
)
