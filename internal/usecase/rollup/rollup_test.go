package rollup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// series builds n consecutive days starting at start, valued 1..n
func series(start time.Time, n int) []domain.DailyPoint {
	points := make([]domain.DailyPoint, n)
	for i := range points {
		points[i] = domain.DailyPoint{
			Date:  start.AddDate(0, 0, i),
			Value: decimal.NewFromInt(int64(i + 1)),
		}
	}
	return points
}

func TestDaily(t *testing.T) {
	points := series(time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC), 3)

	got := Daily(points)
	require.Len(t, got, 3)
	assert.Equal(t, "Jan 30", got[0].Label)
	assert.Equal(t, "Feb 1", got[2].Label)
	assert.True(t, decimal.NewFromInt(3).Equal(got[2].Value))
}

func TestWeekly_FourteenDaysMakeTwoGroups(t *testing.T) {
	points := series(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 14)

	got := Weekly(points)
	require.Len(t, got, 2)

	// 1+..+7 and 8+..+14
	assert.True(t, decimal.NewFromInt(28).Equal(got[0].Value), "got %s", got[0].Value)
	assert.True(t, decimal.NewFromInt(77).Equal(got[1].Value), "got %s", got[1].Value)
	assert.Equal(t, "Week 1", got[0].Label)
	assert.Equal(t, "Week 2", got[1].Label)
	assert.Equal(t, points[0].Date, got[0].Date)
	assert.Equal(t, points[7].Date, got[1].Date)
}

func TestWeekly_ChunksFollowInputNotCalendar(t *testing.T) {
	// Starting mid-month shifts both the chunk boundaries and the labels
	points := series(time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC), 10)

	got := Weekly(points)
	require.Len(t, got, 2)
	assert.Equal(t, "Week 2", got[0].Label) // March 12
	assert.Equal(t, "Week 3", got[1].Label) // March 19
	assert.True(t, decimal.NewFromInt(8+9+10).Equal(got[1].Value))
}

func TestWeekly_Empty(t *testing.T) {
	assert.Empty(t, Weekly(nil))
}

func TestMonthly(t *testing.T) {
	jan := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	points := []domain.DailyPoint{
		{Date: jan, Value: decimal.NewFromInt(10)},
		{Date: jan.AddDate(0, 1, 0), Value: decimal.NewFromInt(5)},
		{Date: jan.AddDate(0, 0, 3), Value: decimal.NewFromInt(1)},
		{Date: jan.AddDate(1, 0, 0), Value: decimal.NewFromInt(7)},
	}

	got := Monthly(points)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"Jan 2024", "Feb 2024", "Jan 2025"},
		[]string{got[0].Label, got[1].Label, got[2].Label})
	assert.True(t, decimal.NewFromInt(11).Equal(got[0].Value))
	assert.Equal(t, jan, got[0].Date)
}

func TestAggregate(t *testing.T) {
	points := series(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 9)

	daily, err := Aggregate(points, domain.PeriodDaily)
	require.NoError(t, err)
	assert.Len(t, daily, 9)

	weekly, err := Aggregate(points, domain.PeriodWeekly)
	require.NoError(t, err)
	assert.Len(t, weekly, 2)

	monthly, err := Aggregate(points, domain.PeriodMonthly)
	require.NoError(t, err)
	assert.Len(t, monthly, 1)

	_, err = Aggregate(points, domain.Period("hourly"))
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestInRange(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	points := series(start, 10)

	got := InRange(points, domain.DateRange{From: start.AddDate(0, 0, 2), To: start.AddDate(0, 0, 4)})
	require.Len(t, got, 3)
	assert.Equal(t, points[2], got[0])
	assert.Equal(t, points[4], got[2])
}
