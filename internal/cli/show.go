package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/taskboard/internal/service"
)

func newShowCmd(e *env) *cobra.Command {
	var (
		filter filterFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "show ROW",
		Short: "Print the detail of a row of the filtered table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("row must be an integer: %q", args[0])
			}

			svc, err := e.service(cmd.Context())
			if err != nil {
				return err
			}
			if opts, err := svc.Options(cmd.Context()); err == nil {
				filter.warnUnknown(cmd.ErrOrStderr(), opts)
			}
			detail, err := svc.Detail(cmd.Context(), filter.query(cmd), row)
			if errors.Is(err, service.ErrSelectionOutOfRange) {
				return fmt.Errorf("no such row %d", row)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatText:
				renderDetail(out, detail)
				return nil
			case formatJSON:
				return writeJSON(out, detail)
			default:
				return unsupportedFormat(format)
			}
		},
	}
	filter.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	return cmd
}
