package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/aws-cost-report-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ___  _      ______    _____          __    ___                       __
  / _ | | | /| / / __/  / ___/__  ___ _/ /_  / _ \___ ___  ___  ____ / /_
 / __ | | |/ |/ /\ \   / /__/ _ \(_-</ __/ / , _/ -_) _ \/ _ \/ __// __/
/_/ |_| |__/|__/___/   \___/\___/___/\__/ /_/|_|\__/ .__/\___/_/   \__/
                                                  /_/
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("AWS Cost Report (v%s)", version.FormatVersion())))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
