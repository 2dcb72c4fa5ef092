package cmd

import (
	"fmt"

	"github.com/alec-rabold/zipclean/pkg/zipfile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var fix bool

var cleanCmd = &cobra.Command{
	Use:   "clean [--fix] [--] <file.zip>...",
	Short: "Report or rewrite unsafe entry names in local zip archives",
	Long: `Walks the central directory of each archive and reports every entry name
that starts with / or contains a .. parent reference. With --fix the
replacement names are written in place, to both the central directory and
the matching local file header. Without it nothing is written.

Each archive is processed independently: a failure on one is reported and
processing continues with the next. Use -- before paths that begin with a
dash.

	ex:
	zipclean clean archive.zip
	zipclean clean --fix archive.zip more.zip
	zipclean clean --fix -- -weird-name.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			res, err := zipfile.CleanFile(path, fix)
			for _, r := range res.Renames {
				fmt.Printf("%s: %s -> %s\n", path, r.Old, r.New)
			}
			if err != nil {
				failed++
				log.Errorf("error cleaning archive (path: %s)(modified: %t), err: %v", path, res.Modified, err)
			}
		}
		if failed > 0 {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return fmt.Errorf("%d of %d archives failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&fix, "fix", "f", false, "rewrite unsafe names in place (default: report only)")
}
