package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/statemelt/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode renders records to w.
//
// json is a single-line array with keys name, obesity_percentage, restaurant, count;
// pretty is the same array indented; table is a bordered terminal table.
func Encode(w io.Writer, records []domain.OutputRecord, format domain.OutputFormat) error {
	if records == nil {
		records = []domain.OutputRecord{}
	}

	switch format {
	case domain.OutputJSON, "":
		b, err := json.Marshal(records)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case domain.OutputPretty:
		b, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case domain.OutputTable:
		_, err := fmt.Fprintln(w, renderTable(records))
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected json|pretty|table)", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

func renderTable(records []domain.OutputRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "OBESITY %", "RESTAURANT", "COUNT").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1 || col == 3:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for _, r := range records {
		t.Row(r.Name, formatNumber(r.ObesityPercentage), string(r.Restaurant), formatNumber(r.Count))
	}
	return t.Render()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
