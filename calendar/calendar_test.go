package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hypercube/record"
)

func ms(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func TestAddDateFacts(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want map[string]string
	}{
		{
			name: "mid year",
			at:   time.Date(2024, time.July, 4, 15, 30, 0, 0, time.UTC),
			want: map[string]string{
				"year": "2024", "month": "7", "day": "4", "hour": "15",
				"iso_week": "2024-W27", "day_of_week": "Thu",
			},
		},
		{
			name: "iso week belongs to previous year",
			at:   time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: map[string]string{
				"year": "2021", "month": "1", "day": "1", "hour": "0",
				"iso_week": "2020-W53", "day_of_week": "Fri",
			},
		},
		{
			name: "iso week belongs to next year",
			at:   time.Date(2024, time.December, 30, 23, 0, 0, 0, time.UTC),
			want: map[string]string{
				"year": "2024", "month": "12", "day": "30", "hour": "23",
				"iso_week": "2025-W01", "day_of_week": "Mon",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []record.Record{
				record.NewAt(ms(tt.at), map[string]string{"genre": "rock"}, nil),
			}
			require.NoError(t, AddDateFacts(records, WithLocation(time.UTC)))

			want := map[string]string{"genre": "rock"}
			for k, v := range tt.want {
				want[k] = v
			}
			assert.Equal(t, want, records[0].Facts)
		})
	}
}

func TestAddDateFacts_Location(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	at := time.Date(2024, time.March, 31, 20, 0, 0, 0, time.UTC)

	records := []record.Record{record.NewAt(ms(at), map[string]string{}, nil)}
	require.NoError(t, AddDateFacts(records, WithLocation(tokyo)))

	assert.Equal(t, "4", records[0].Facts[FactMonth])
	assert.Equal(t, "1", records[0].Facts[FactDay])
	assert.Equal(t, "5", records[0].Facts[FactHour])
	assert.Equal(t, "Mon", records[0].Facts[FactDayOfWeek])
}

func TestAddDateFacts_Unit(t *testing.T) {
	at := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)

	records := []record.Record{record.NewAt(float64(at.Unix()), map[string]string{}, nil)}
	require.NoError(t, AddDateFacts(records, WithLocation(time.UTC), WithUnit(time.Second)))

	assert.Equal(t, "2023", records[0].Facts[FactYear])
	assert.Equal(t, "22", records[0].Facts[FactHour])
}

func TestAddDateFacts_ReportsAndContinues(t *testing.T) {
	at := ms(time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC))
	records := []record.Record{
		record.New(map[string]string{}, nil),
		record.NewAt(at, nil, nil),
		record.NewAt(at, map[string]string{}, nil),
	}

	err := AddDateFacts(records, WithLocation(time.UTC))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrMissingTime)
	assert.ErrorIs(t, err, ErrMissingFacts)

	var re *RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 0, re.Index)
	assert.Contains(t, err.Error(), "record 1")

	assert.Empty(t, records[0].Facts)
	assert.Nil(t, records[1].Facts)
	assert.Equal(t, "2024", records[2].Facts[FactYear])
}

func TestEnrich(t *testing.T) {
	r := record.NewAt(0, map[string]string{}, nil)
	require.NoError(t, Enrich(&r, WithLocation(time.UTC)))
	assert.Equal(t, "1970", r.Facts[FactYear])
	assert.Equal(t, "1970-W01", r.Facts[FactISOWeek])

	untimed := record.New(map[string]string{}, nil)
	assert.ErrorIs(t, Enrich(&untimed), ErrMissingTime)
}

func TestEnricher_PassesThroughIncomplete(t *testing.T) {
	enrich := Enricher(WithLocation(time.UTC))

	untimed := record.New(map[string]string{"genre": "rock"}, nil)
	require.NoError(t, enrich(&untimed))
	assert.Equal(t, map[string]string{"genre": "rock"}, untimed.Facts)

	timed := record.NewAt(0, map[string]string{}, nil)
	require.NoError(t, enrich(&timed))
	assert.Equal(t, "Thu", timed.Facts[FactDayOfWeek])
}
