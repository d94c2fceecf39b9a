package report

import (
    "encoding/csv"
    "fmt"
    "io"

    "github.com/go-pdf/fpdf"
    "github.com/xuri/excelize/v2"

    "github.com/pharmadesk/pharmapay/internal/errs"
)

// Format is the export container requested by the caller. The row/column
// contract is identical across formats; only the byte layout differs.
type Format string

const (
    FormatCSV  Format = "csv"
    FormatXLSX Format = "xlsx"
    FormatPDF  Format = "pdf"
)

// ParseFormat validates a format tag. An empty tag defaults to CSV, which
// is what the original report screen produced.
func ParseFormat(s string) (Format, error) {
    switch Format(s) {
    case FormatCSV, "":
        return FormatCSV, nil
    case FormatXLSX:
        return FormatXLSX, nil
    case FormatPDF:
        return FormatPDF, nil
    }
    return "", fmt.Errorf("%w: unknown format %q", errs.ErrValidation, s)
}

// ContentType returns the MIME type for HTTP downloads.
func (f Format) ContentType() string {
    switch f {
    case FormatXLSX:
        return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
    case FormatPDF:
        return "application/pdf"
    default:
        return "text/csv; charset=utf-8"
    }
}

// Ext returns the filename extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes the document to w in the requested format.
func Encode(w io.Writer, f Format, doc Document) error {
    switch f {
    case FormatXLSX:
        return encodeXLSX(w, doc)
    case FormatPDF:
        return encodePDF(w, doc)
    default:
        return encodeCSV(w, doc)
    }
}

func encodeCSV(w io.Writer, doc Document) error {
    cw := csv.NewWriter(w)
    for _, line := range doc.Preamble {
        if err := cw.Write([]string{line}); err != nil {
            return err
        }
    }
    if err := cw.Write(doc.Header); err != nil {
        return err
    }
    for _, row := range doc.Rows {
        if err := cw.Write(row); err != nil {
            return err
        }
    }
    cw.Flush()
    return cw.Error()
}

func encodeXLSX(w io.Writer, doc Document) error {
    f := excelize.NewFile()
    sheet := "Report"
    index, err := f.NewSheet(sheet)
    if err != nil {
        return err
    }
    f.SetActiveSheet(index)
    f.DeleteSheet("Sheet1")

    row := 1
    for _, line := range doc.Preamble {
        cell, _ := excelize.CoordinatesToCellName(1, row)
        if err := f.SetCellValue(sheet, cell, line); err != nil {
            return err
        }
        row++
    }
    row++ // blank line between preamble and table
    if err := setRow(f, sheet, row, doc.Header); err != nil {
        return err
    }
    row++
    for _, r := range doc.Rows {
        if err := setRow(f, sheet, row, r); err != nil {
            return err
        }
        row++
    }
    return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
    for i, v := range values {
        cell, err := excelize.CoordinatesToCellName(i+1, row)
        if err != nil {
            return err
        }
        if err := f.SetCellValue(sheet, cell, v); err != nil {
            return err
        }
    }
    return nil
}

// pdfColWidths spreads the ten columns over a landscape A4 page; notes get
// the leftover width.
var pdfColWidths = []float64{22, 45, 24, 20, 20, 24, 26, 24, 18, 54}

func encodePDF(w io.Writer, doc Document) error {
    pdf := fpdf.New("L", "mm", "A4", "")
    pdf.SetAutoPageBreak(true, 12)
    pdf.AddPage()

    pdf.SetFont("Helvetica", "B", 12)
    for i, line := range doc.Preamble {
        if i > 0 {
            pdf.SetFont("Helvetica", "", 9)
        }
        pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
    }
    pdf.Ln(2)

    pdf.SetFont("Helvetica", "B", 8)
    for i, h := range doc.Header {
        pdf.CellFormat(pdfColWidths[i], 6, h, "1", 0, "C", false, 0, "")
    }
    pdf.Ln(-1)

    pdf.SetFont("Helvetica", "", 8)
    for _, row := range doc.Rows {
        for i, v := range row {
            pdf.CellFormat(pdfColWidths[i], 5, v, "1", 0, "L", false, 0, "")
        }
        pdf.Ln(-1)
    }
    return pdf.Output(w)
}
