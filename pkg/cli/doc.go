/*
Package cli provides helpers shared by the folio commands.

Output Formatting:

Command results are written as text, JSON or CSV:

	formatter, err := cli.NewFormatter(cli.OutputFormat(format))
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(cmd.OutOrStdout(), result); err != nil {
		return err
	}

Text output uses the TextRenderer method of the result when it has one.
CSV output requires a Table.

Exit Codes:

ExitCode maps a command error to the process exit status. A containment
refusal exits with 2, so scripts can tell "not allowed" from "broken".

Signal Handling:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli
