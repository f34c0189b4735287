package cli

import (
	"fmt"
	"runtime"

	"github.com/jflowmap/jflowmap-demo/internal/build"

	"github.com/spf13/cobra"
)

func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "jflowmap-demo version information",
		Long:  `Print the version information of jflowmap-demo`,
		Run: func(cmd *cobra.Command, args []string) {
			version()
		},
	}
}

func version() {
	fmt.Printf("jflowmap-demo v%s (Go version: %s)\n", build.Version, runtime.Version())
}
