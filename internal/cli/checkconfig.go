package cli

import (
	"fmt"
	"os"

	"github.com/jflowmap/jflowmap-demo/internal/viewlist"

	"github.com/spf13/cobra"
)

func CheckConfig() *cobra.Command {
	var catalogFile string
	cmd := &cobra.Command{
		Use:   "checkconfig",
		Short: "Check views catalog",
		Long:  `Validate a views catalog file and report every schema problem found`,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(checkConfig(catalogFile))
		},
	}
	cmd.Flags().StringVarP(&catalogFile, "catalog", "f", "views.yaml", "path to the views catalog to check")
	return cmd
}

func checkConfig(catalogFile string) int {
	catalog, err := viewlist.LoadCatalog(catalogFile)
	if err != nil {
		fmt.Println(err)
		return 1
	}
	fmt.Printf("catalog %s ok: views=%d viewconfs=%d sha256=%s\n", catalog.Path, len(catalog.Views), catalog.ViewConfCount(), catalog.Digest)
	return 0
}
