package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/rollcall/internal/attendance"
	"github.com/Veraticus/rollcall/internal/calendar"
	"github.com/Veraticus/rollcall/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregateCSV(t *testing.T, input string, order calendar.Order) *attendance.Result {
	t.Helper()

	result, err := attendance.Aggregate(roster.NewCSVSource(strings.NewReader(input)), order)
	require.NoError(t, err)
	return result
}

func generateCSV(t *testing.T, input, reference string) *Report {
	t.Helper()

	result := aggregateCSV(t, input, calendar.MonthDayYear)
	ref, err := ResolveReference(reference, calendar.MonthDayYear, result.Latest, nil)
	require.NoError(t, err)

	rep, err := Generate(result, ref)
	require.NoError(t, err)
	return rep
}

const basicInput = `Student Name,Class Date,Attendance
Alice,1/5/24,present
Alice,1/12/24,absent
Bob,1/5/24,present
Bob,1/12/24,present
`

func TestGenerateLatestDateReference(t *testing.T) {
	rep := generateCSV(t, basicInput, "")

	assert.Equal(t, calendar.Date{Year: 2024, Month: 1, Day: 12}, rep.Reference)
	assert.Equal(t, 2, rep.TotalSessions)
	assert.Equal(t, []Line{
		{Name: "Alice", Attended: 1, Rate: 0.5, DaysSince: 7},
		{Name: "Bob", Attended: 2, Rate: 1, DaysSince: 0},
	}, rep.Lines)

	want := "Grade Report\n\n" +
		"Name\tRate\tDays Since Attended\n" +
		"Alice\t50.0%\t7\n" +
		"Bob\t100.0%\t0\n"
	assert.Equal(t, want, rep.String())
}

func TestGenerateCaseInsensitiveAttendance(t *testing.T) {
	upper := strings.ReplaceAll(basicInput, "present", "PRESENT")

	assert.Equal(t, generateCSV(t, basicInput, "").String(), generateCSV(t, upper, "").String())
}

func TestGenerateTwoDigitYears(t *testing.T) {
	rep := generateCSV(t, `Student Name,Class Date,Attendance
Alice,1/5/24,present
Bob,1/5/99,present
`, "")

	assert.Equal(t, calendar.Date{Year: 2099, Month: 1, Day: 5}, rep.Reference)
	require.Len(t, rep.Lines, 2)

	days, err := calendar.DayDifference(calendar.Date{Year: 2099, Month: 1, Day: 5}, calendar.Date{Year: 2024, Month: 1, Day: 5})
	require.NoError(t, err)
	assert.Equal(t, days, rep.Lines[0].DaysSince)
	assert.Equal(t, 0, rep.Lines[1].DaysSince)
}

func TestGenerateReorderedHeader(t *testing.T) {
	rep := generateCSV(t, `Attendance,Student Name,Class Date
present,Alice,1/5/24
absent,Alice,1/12/24
present,Bob,1/5/24
present,Bob,1/12/24
`, "")

	assert.Equal(t, generateCSV(t, basicInput, "").String(), rep.String())
}

func TestGenerateNeverAttended(t *testing.T) {
	rep := generateCSV(t, `Student Name,Class Date,Attendance
Alice,1/5/24,absent
Bob,1/5/24,present
Alice,1/6/24,late
`, "")

	require.Len(t, rep.Lines, 2)
	assert.True(t, rep.Lines[0].Never)
	assert.Equal(t, "Alice\t0.0%\tnever", strings.Split(rep.String(), "\n")[3])
	assert.Equal(t, 1, rep.NeverAttendedCount())
}

func TestGenerateRounding(t *testing.T) {
	var b strings.Builder
	b.WriteString("Student Name,Class Date,Attendance\n")
	for day := 1; day <= 6; day++ {
		status := "present"
		if day == 6 {
			status = "absent"
		}
		b.WriteString("Alice,1/" + string(rune('0'+day)) + "/24," + status + "\n")
	}

	rep := generateCSV(t, b.String(), "")
	assert.Equal(t, "83.3%", rep.Lines[0].FormatRate())
	assert.Equal(t, "1", rep.Lines[0].FormatDaysSince())
}

func TestGenerateExplicitReference(t *testing.T) {
	rep := generateCSV(t, basicInput, "2/1/2024")

	assert.Equal(t, 27, rep.Lines[0].DaysSince)
	assert.Equal(t, 20, rep.Lines[1].DaysSince)

	rep = generateCSV(t, basicInput, "1/1/2024")
	assert.Equal(t, -4, rep.Lines[0].DaysSince, "references before the last attendance are negative")
}

func TestGenerateNoSessions(t *testing.T) {
	_, err := Generate(aggregateCSV(t, "", calendar.MonthDayYear), calendar.Date{})
	assert.ErrorIs(t, err, ErrNoSessions)

	_, err = Generate(aggregateCSV(t, "Student Name,Class Date,Attendance\n", calendar.MonthDayYear), calendar.Date{})
	assert.ErrorIs(t, err, ErrNoSessions)

	_, err = Generate(nil, calendar.Date{})
	assert.ErrorIs(t, err, ErrNoSessions)
}

func TestResolveReference(t *testing.T) {
	latest := calendar.Date{Year: 2024, Month: 1, Day: 12}
	clock := func() time.Time {
		return time.Date(2024, time.March, 3, 10, 0, 0, 0, time.Local)
	}

	tests := []struct {
		name    string
		value   string
		order   calendar.Order
		want    calendar.Date
		wantErr error
	}{
		{name: "default latest", value: "", want: latest},
		{name: "today", value: "today", want: calendar.Date{Year: 2024, Month: 3, Day: 3}},
		{name: "today any case", value: " Today ", want: calendar.Date{Year: 2024, Month: 3, Day: 3}},
		{name: "explicit mdy", value: "2/1/24", want: calendar.Date{Year: 2024, Month: 2, Day: 1}},
		{name: "explicit ymd", value: "2024-02-01", order: calendar.YearMonthDay, want: calendar.Date{Year: 2024, Month: 2, Day: 1}},
		{name: "garbage", value: "yesterday", wantErr: calendar.ErrMalformedDate},
		{name: "impossible", value: "2/30/24", wantErr: calendar.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveReference(tt.value, tt.order, latest, clock)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteFile(t *testing.T) {
	rep := generateCSV(t, basicInput, "")
	path := filepath.Join(t.TempDir(), "out", "report.txt")

	require.NoError(t, rep.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, rep.String(), string(data))
}
