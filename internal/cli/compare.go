package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MartinianoLopez/comparador-clientes/internal/api"
	"github.com/MartinianoLopez/comparador-clientes/internal/model"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/reconciler"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/render"
	"github.com/MartinianoLopez/comparador-clientes/internal/util"
)

func newCompareCommand(a *app) *cobra.Command {
	var (
		output  string
		details bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "compare ANTERIOR.xlsx ACTUAL.xlsx",
		Short: "Compara dos archivos y muestra el resumen",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels, err := a.cfg.LabelSet()
			if err != nil {
				return err
			}

			decoder := excel.NewDecoder(a.cfg.Columns())
			records := make([][]model.RawRecord, 0, len(args))
			for _, path := range args {
				ds, err := decodeFile(decoder, path)
				if err != nil {
					return err
				}
				util.Log.WithFields(logrus.Fields{
					"file":    ds.FileName,
					"sheet":   ds.SheetName,
					"records": len(ds.Records),
					"skipped": ds.SkippedRows,
				}).Debug("file decoded")
				records = append(records, ds.Records)
			}

			result, err := reconciler.New(a.cfg.Comparison.ExtraFields, labels).Compare(records...)
			if err != nil {
				var inputErr *reconciler.InputError
				if errors.As(err, &inputErr) {
					return fmt.Errorf("%s (%w)", api.MsgTwoFilesRequired, err)
				}
				return err
			}

			if err := render.Text(cmd.OutOrStdout(), result, render.TextOptions{
				Color:   !noColor,
				Details: details,
			}); err != nil {
				return err
			}

			if output == "" {
				return nil
			}
			if err := writeExport(result, a.cfg.Export.SheetName, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exportado: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the comparison workbook to this path (e.g. "+excel.ExportFileName+")")
	cmd.Flags().BoolVar(&details, "details", false, "print one row per client")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func decodeFile(decoder *excel.Decoder, path string) (*excel.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decoder.Decode(f, filepath.Base(path))
}

func writeExport(result *model.Result, sheetName, path string) error {
	file, err := excel.NewExporter(sheetName).Export(result)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
