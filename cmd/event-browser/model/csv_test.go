package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCSV_CSVUnmarshaling(t *testing.T) {
	csvContent := `title,description,start_date,end_date,location,categories,price,capacity,online
Jazz Night,Live trio,2025-03-01T19:00,,Union Ballroom,music|nightlife,12.5,80,false
Study Jam,,2025-03-02,,Library,academic,,,true`

	var rows []*EventCSV
	err := gocsv.Unmarshal(strings.NewReader(csvContent), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	d, err := rows[0].ToDraft()
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", d.Title)
	assert.Equal(t, []string{"music", "nightlife"}, d.Categories)
	assert.Equal(t, 12.5, *d.Price)
	assert.Equal(t, 80, *d.Capacity)
	assert.False(t, *d.Online)

	d, err = rows[1].ToDraft()
	require.NoError(t, err)
	assert.Nil(t, d.Price)
	assert.Nil(t, d.Capacity)
	assert.True(t, *d.Online)
}

func TestEventCSV_ToDraftErrors(t *testing.T) {
	tests := []struct {
		name string
		row  EventCSV
		err  string
	}{
		{"Bad price", EventCSV{Price: "free"}, "price"},
		{"Bad capacity", EventCSV{Capacity: "1.5"}, "capacity"},
		{"Bad online", EventCSV{Online: "maybe"}, "online"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.row.ToDraft()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestNewEventCSV_Marshal(t *testing.T) {
	price := 5.0
	rows := []*EventCSV{}
	row := NewEventCSV(Event{
		Title:      "Jazz Night",
		StartDate:  "2025-03-01",
		Location:   "Union",
		Categories: []string{"music", "nightlife"},
		Price:      &price,
	})
	rows = append(rows, &row)

	var buf bytes.Buffer
	err := gocsv.Marshal(rows, &buf)
	assert.NoError(t, err)

	content := buf.String()
	assert.Contains(t, content, "title,description,start_date,end_date,location,categories,price,capacity,online")
	assert.Contains(t, content, "Jazz Night,,2025-03-01,,Union,music|nightlife,5,,")
}
