package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd(e *env) *cobra.Command {
	var (
		filter filterFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered task table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.service(cmd.Context())
			if err != nil {
				return err
			}
			if opts, err := svc.Options(cmd.Context()); err == nil {
				filter.warnUnknown(cmd.ErrOrStderr(), opts)
			}
			rows, err := svc.View(cmd.Context(), filter.query(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatText:
				renderRows(out, rows)
				return nil
			case formatJSON:
				return writeJSON(out, rows)
			default:
				return unsupportedFormat(format)
			}
		},
	}
	filter.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	return cmd
}
