package output

import (
	"github.com/olekukonko/tablewriter/tw"

	"github.com/optimade/optimade-go/pkg/providers"
)

// ProviderList renders resolved provider records.
type ProviderList []providers.Record

// TableData implements Tabler. The wide layout adds the homepage and object id.
func (l ProviderList) TableData(wide bool) Data {
	keys := []string{"id", "name", "base_url"}
	if wide {
		keys = append(keys, "homepage", "_id")
	}

	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = Header(k)
	}
	headers[0] = "ID"

	rows := make([][]string, 0, len(l))
	for _, rec := range l {
		row := []string{rec.ID(), rec.Name(), orDash(rec.BaseURL())}
		if wide {
			row = append(row, orDash(rec.Homepage()), rec.OID())
		}
		rows = append(rows, row)
	}

	align := make([]tw.Align, len(keys))
	for i := range align {
		align[i] = tw.AlignLeft
	}
	return Data{Headers: headers, Rows: rows, Alignment: align}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
