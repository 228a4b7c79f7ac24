// Package main provides the CLI entry point for cellgrid-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.alis.build/alog"

	"github.com/ukaji3/cellgrid-go/internal/tui"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/grid"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/output"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/xlsx"
)

var (
	outputPath string
	pretty     bool
	minRows    int
	minCols    int
	logLevel   string
	rangeRef   string
	toLegacy   bool
	sheetName  string
	values     bool
)

var logLevels = map[string]alog.LogLevel{
	"debug":   alog.LevelDebug,
	"info":    alog.LevelInfo,
	"warning": alog.LevelWarning,
	"error":   alog.LevelError,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cellgrid",
		Short: "Evaluate, convert and edit cellgrid sheets",
		Long: `cellgrid-go works with sheet files: JSON snapshots or the legacy
comma/line delimited text. Formulas are evaluated on read.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := logLevels[strings.ToLower(logLevel)]
			if !ok {
				return fmt.Errorf("invalid log level: %s (must be debug, info, warning, or error)", logLevel)
			}
			alog.SetLevel(level)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&minRows, "min-rows", cellgrid.DefaultMinRows, "Minimum number of rows")
	pf.IntVar(&minCols, "min-cols", cellgrid.DefaultMinCols, "Minimum number of columns")
	pf.StringVar(&logLevel, "log-level", "warning", "Log level: debug, info, warning, error")

	evalCmd := &cobra.Command{
		Use:   "eval [sheet]",
		Short: "Print the evaluated values of a sheet as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}
	addOutputFlags(evalCmd.Flags())
	evalCmd.Flags().StringVar(&rangeRef, "range", "", "Range to evaluate, e.g. A1:D10 (default: used range)")

	convertCmd := &cobra.Command{
		Use:   "convert [sheet]",
		Short: "Convert legacy text to a JSON snapshot, or back with --legacy",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	addOutputFlags(convertCmd.Flags())
	convertCmd.Flags().BoolVar(&toLegacy, "legacy", false, "Write legacy delimited text instead of JSON")

	importCmd := &cobra.Command{
		Use:   "import [book.xlsx]",
		Short: "Read a worksheet into a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	addOutputFlags(importCmd.Flags())
	importCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: first sheet)")

	exportCmd := &cobra.Command{
		Use:   "export [sheet]",
		Short: "Write a sheet to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	exportCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: "+xlsx.DefaultSheetName+")")
	exportCmd.Flags().BoolVar(&values, "values", false, "Write evaluated values instead of formulas")
	_ = exportCmd.MarkFlagRequired("output")

	editCmd := &cobra.Command{
		Use:   "edit [sheet]",
		Short: "Edit a sheet in the terminal; every change is written back",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	}

	rootCmd.AddCommand(evalCmd, convertCmd, importCmd, exportCmd, editCmd)
	return rootCmd
}

func addOutputFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
}

func sheetOptions() cellgrid.Options {
	return cellgrid.Options{MinRows: minRows, MinCols: minCols}
}

func loadSheet(ctx context.Context, path string) (*cellgrid.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := cellgrid.Load(ctx, data, sheetOptions())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := loadSheet(ctx, args[0])
	if err != nil {
		return err
	}

	var r models.Rect
	if rangeRef != "" {
		var ok bool
		if r, ok = ref.ParseRange(rangeRef); !ok {
			return fmt.Errorf("%w: %q", cellgrid.ErrInvalidAddress, rangeRef)
		}
	} else if used, ok := s.UsedRange(); ok {
		r = models.Rect{Bottom: used.Bottom, Right: used.Right}
	}

	view := s.DisplayRange(r)
	jsonData, err := output.DisplayViewToJSON(&view, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(ctx, jsonData)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := loadSheet(ctx, args[0])
	if err != nil {
		return err
	}

	if toLegacy {
		return writeOutput(ctx, []byte(grid.FormatLegacy(usedCells(s))))
	}
	jsonData, err := output.SnapshotToJSON(s.Snapshot(), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(ctx, jsonData)
}

// usedCells returns raw contents from A1 to the bottom-right used cell.
func usedCells(s *cellgrid.Sheet) [][]string {
	used, ok := s.UsedRange()
	if !ok {
		return nil
	}
	cells := s.Snapshot().Grid[:used.Bottom+1]
	for i, row := range cells {
		cells[i] = row[:used.Right+1]
	}
	return cells
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	snap, err := xlsx.ImportFile(ctx, args[0], xlsx.ImportOptions{Sheet: sheetName})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	s := cellgrid.New(sheetOptions())
	if err := s.Replace(ctx, snap); err != nil {
		return err
	}
	jsonData, err := output.SnapshotToJSON(s.Snapshot(), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(ctx, jsonData)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := loadSheet(ctx, args[0])
	if err != nil {
		return err
	}
	opts := xlsx.ExportOptions{Sheet: sheetName, Values: values}
	if err := xlsx.ExportFile(ctx, outputPath, s.Snapshot(), opts); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	alog.Infof(ctx, "wrote %s", outputPath)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	s, err := loadSheet(ctx, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		alog.Infof(ctx, "%s does not exist, starting an empty sheet", path)
		s = cellgrid.New(sheetOptions())
	case err != nil:
		return err
	}

	s.OnChange(func(snap models.Snapshot) {
		data, err := output.SnapshotToJSON(snap, false)
		if err != nil {
			alog.Errorf(ctx, "serialize %s: %v", path, err)
			return
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			alog.Errorf(ctx, "save %s: %v", path, err)
		}
	})

	p := tea.NewProgram(tui.New(s, tui.Config{}), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}

func writeOutput(ctx context.Context, data []byte) error {
	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	alog.Infof(ctx, "wrote %s", outputPath)
	return nil
}
