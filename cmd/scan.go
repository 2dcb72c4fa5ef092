package cmd

import (
	"context"
	"fmt"

	"github.com/alec-rabold/zipclean/pkg/aws"
	"github.com/alec-rabold/zipclean/pkg/zipfile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var keys []string
var bucket string

var scanCmd = &cobra.Command{
	Use:   "scan -b <bucket> -k <key>...",
	Short: "Report unsafe entry names in zip archives stored in S3",
	Long: `Reads only the central directory and the affected local headers of each
zip object via ranged requests, without downloading the whole archive.
Scanning is report-only; nothing in S3 is modified.

	ex:
	zipclean scan -b myBucket -k myKey
	zipclean scan -b myBucket -k release.zip -k nightly.zip`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(keys) == 0 || bucket == "" {
			cmd.Usage()
			return fmt.Errorf("bucket and at least one key are required")
		}
		client := aws.NewClient()
		ctx := context.Background()
		failed := 0
		for _, key := range keys {
			label := fmt.Sprintf("s3://%s/%s", bucket, key)
			res, err := zipfile.ScanObject(ctx, client, bucket, key)
			for _, r := range res.Renames {
				fmt.Printf("%s: %s -> %s\n", label, r.Old, r.New)
			}
			if err != nil {
				failed++
				log.Errorf("error scanning archive (object: %s), err: %v", label, err)
			}
		}
		if failed > 0 {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return fmt.Errorf("%d of %d objects failed", failed, len(keys))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.PersistentFlags().StringVarP(&bucket, "bucket", "b", "", "(required) name of the S3 bucket")
	scanCmd.PersistentFlags().StringSliceVarP(&keys, "key", "k", []string{}, "(required) name(s) of the S3 key(s) to scan")
}
