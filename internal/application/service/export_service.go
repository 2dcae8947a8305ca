package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/pkg/apperror"
	"github.com/labomak/dashboard/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService writes the filtered list of a module as an XLSX workbook.
type ExportService struct {
	gw  *gateway.Gateway
	now func() time.Time
}

// NewExportService creates a new export service
func NewExportService(gw *gateway.Gateway) *ExportService {
	return &ExportService{gw: gw, now: time.Now}
}

// Filters returns the filters a module list accepts, for building criteria.
func (s *ExportService) Filters(module string) ([]dashboard.Filter, error) {
	switch module {
	case dashboard.ModuleCustomers:
		return dashboard.CustomerDescriptor(s.gw).Filters, nil
	case dashboard.ModuleProducts:
		return dashboard.ProductDescriptor(s.gw).Filters, nil
	case dashboard.ModuleOffers:
		return dashboard.OfferDescriptor(s.gw, nil).Filters, nil
	}
	return nil, apperror.NewBadRequestError(fmt.Sprintf("Dışa aktarılamayan modül: %s", module))
}

// Export writes every row of module matching c, in list order, and returns
// the file name to offer for download.
func (s *ExportService) Export(ctx context.Context, module string, c dashboard.Criteria, w io.Writer) (string, error) {
	var err error
	switch module {
	case dashboard.ModuleCustomers:
		err = exportList(ctx, w, dashboard.CustomerDescriptor(s.gw), c)
	case dashboard.ModuleProducts:
		err = exportList(ctx, w, dashboard.ProductDescriptor(s.gw), c)
	case dashboard.ModuleOffers:
		err = exportList(ctx, w, dashboard.OfferDescriptor(s.gw, nil), c)
	default:
		return "", apperror.NewBadRequestError(fmt.Sprintf("Dışa aktarılamayan modül: %s", module))
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s.xlsx", utils.Slugify(module), s.now().Format("20060102")), nil
}

func exportList[E any](ctx context.Context, w io.Writer, desc *dashboard.Descriptor[E], c dashboard.Criteria) error {
	list := dashboard.NewListController(desc)
	list.Refresh(ctx)
	list.ApplyFilter(c)

	items := list.Filtered()
	rows := make([][]string, 0, len(items))
	for _, e := range items {
		rows = append(rows, desc.Row(e))
	}
	return WriteXLSX(w, desc.Label, desc.Headers(), rows)
}

// WriteXLSX writes one sheet with a bold header row.
func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("sheet name: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if len(headers) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
