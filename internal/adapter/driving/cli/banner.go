package cli

import (
	"fmt"

	"github.com/diillson/fraud-dashboard-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(_ string) {
	banner := `
        ███████╗██████╗  █████╗ ██╗   ██╗██████╗
        ██╔════╝██╔══██╗██╔══██╗██║   ██║██╔══██╗
        █████╗  ██████╔╝███████║██║   ██║██║  ██║
        ██╔══╝  ██╔══██╗██╔══██║██║   ██║██║  ██║
        ██║     ██║  ██║██║  ██║╚██████╔╝██████╔╝
        ╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝
                   D A S H B O A R D
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Fraud Dashboard CLI (v%s)", formattedVersion)))
}
