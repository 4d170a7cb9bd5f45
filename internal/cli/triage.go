package cli

import (
	"github.com/spf13/cobra"
)

func newTriageCmd(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Print the overdue and upcoming call-outs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.service(cmd.Context())
			if err != nil {
				return err
			}
			tr, err := svc.Triage(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatText:
				renderTriage(out, tr)
				return nil
			case formatJSON:
				return writeJSON(out, newTriageReport(tr))
			case formatYAML:
				return writeYAML(out, newTriageReport(tr))
			default:
				return unsupportedFormat(format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json or yaml")
	return cmd
}
