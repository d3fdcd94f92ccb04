package report

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout  = "2006-01-02"
	totalsLabel = "Total"
)

type column struct {
	header   string
	summable bool
}

// table is one CSV report: a header, data rows and a totals row over the
// summable columns. The totals row is left out when there are no rows.
type table struct {
	columns []column
	rows    [][]string
}

func newTable(columns ...column) *table {
	return &table{columns: columns}
}

func (t *table) append(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) headers() []string {
	h := make([]string, len(t.columns))
	for i, c := range t.columns {
		h[i] = c.header
	}
	return h
}

func (t *table) totals() []string {
	out := make([]string, len(t.columns))
	out[0] = totalsLabel
	for i, c := range t.columns {
		if !c.summable {
			continue
		}
		sum := decimal.Zero
		var places int32
		for _, row := range t.rows {
			v, err := decimal.NewFromString(row[i])
			if err != nil {
				continue
			}
			if p := -v.Exponent(); p > places {
				places = p
			}
			sum = sum.Add(v)
		}
		out[i] = sum.StringFixed(places)
	}
	return out
}

// sortByDate orders rows by the date in column idx, oldest first. Cells
// that do not parse sort as today.
func (t *table) sortByDate(idx int, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	key := func(row []string) time.Time {
		d, err := time.Parse(dateLayout, row[idx])
		if err != nil {
			return today
		}
		return d
	}
	sort.SliceStable(t.rows, func(i, j int) bool {
		return key(t.rows[i]).Before(key(t.rows[j]))
	})
}

func (t *table) render() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.headers()); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.rows); err != nil {
		return nil, err
	}
	if len(t.rows) > 0 {
		if err := w.Write(t.totals()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
