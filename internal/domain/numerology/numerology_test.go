package numerology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "single digit stays", input: 7, expected: 7},
		{name: "upper bound stays", input: 12, expected: 12},
		{name: "ten stays", input: 10, expected: 10},
		{name: "thirteen folds once", input: 13, expected: 4},
		{name: "year folds twice", input: 1999, expected: 10},
		{name: "nineteen folds to ten", input: 19, expected: 10},
		{name: "large number", input: 987654321, expected: 9},
		{name: "zero is returned unchanged", input: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Reduce(tc.input))
		})
	}
}

func TestReduceRangeAndIdempotence(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 20000; n++ {
		r := Reduce(n)
		require.GreaterOrEqual(t, r, 1, "Reduce(%d)", n)
		require.LessOrEqual(t, r, MaxValue, "Reduce(%d)", n)
		require.Equal(t, r, Reduce(r), "Reduce must be idempotent on its output for %d", n)
	}
}

func TestDigitSum(t *testing.T) {
	assert.Equal(t, 19, DigitSum(1990))
	assert.Equal(t, 2, DigitSum(2000))
	assert.Equal(t, 0, DigitSum(0))
}

func TestDeriveKnownDate(t *testing.T) {
	t.Parallel()

	b, err := NewBirthDate(15, 5, 1990)
	require.NoError(t, err)

	p := Derive(b)

	assert.Equal(t, 6, p.I)
	assert.Equal(t, 5, p.II)
	assert.Equal(t, 10, p.III, "1+9+9+0 = 19 folds to 10")
	assert.Equal(t, 3, p.IV)
	assert.Equal(t, 6, p.V)
	assert.Equal(t, 12, p.A)
	assert.Equal(t, 11, p.B)
	assert.Equal(t, 7, p.C)
	assert.Equal(t, 9, p.D)

	assert.Equal(t, Line{From20To40: 8, From40To60: 10, From60Plus: 7}, p.Spirit)
	assert.Equal(t, Line{From20To40: 7, From40To60: 8, From60Plus: 5}, p.Matter)
	assert.Equal(t, Line{From20To40: 6, From40To60: 9, From60Plus: 12}, p.Connection)
}

func TestDeriveIsDeterministicAndInRange(t *testing.T) {
	t.Parallel()

	start := time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(MaxYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	// Every 7th day keeps the walk short while touching all months and weekdays.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		b, err := FromTime(d)
		require.NoError(t, err)

		first := Derive(b)
		second := Derive(b)
		require.Equal(t, first, second, "Derive(%s) not deterministic", b)

		for i, v := range first.Values() {
			require.True(t, v >= 1 && v <= MaxValue, "field %d of Derive(%s) = %d out of range", i, b, v)
		}
	}
}

func TestBandForAge(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		age      int
		expected Band
	}{
		{age: 0, expected: Band20To40},
		{age: 25, expected: Band20To40},
		{age: 39, expected: Band20To40},
		{age: 40, expected: Band40To60},
		{age: 59, expected: Band40To60},
		{age: 60, expected: Band60Plus},
		{age: 95, expected: Band60Plus},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, BandForAge(tc.age), "age %d", tc.age)
	}
}

func TestProfileResolve(t *testing.T) {
	b, err := NewBirthDate(15, 5, 1990)
	require.NoError(t, err)
	p := Derive(b)

	v, ok := p.Resolve(KeyIV, Band60Plus)
	require.True(t, ok)
	assert.Equal(t, 3, v, "scalar keys ignore the band")

	v, ok = p.Resolve(KeySpiritLine, Band40To60)
	require.True(t, ok)
	assert.Equal(t, 10, v)

	v, ok = p.Resolve(KeyConnection, Band60Plus)
	require.True(t, ok)
	assert.Equal(t, 12, v)

	_, ok = p.Resolve(Key("VI"), Band20To40)
	assert.False(t, ok)

	_, ok = p.Resolve(KeyMatterLine, Band("80_plus"))
	assert.False(t, ok)
}

func TestNewBirthDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		day         int
		month       int
		year        int
		expectedErr error
	}{
		{name: "valid date", day: 15, month: 5, year: 1990},
		{name: "leap day in leap year", day: 29, month: 2, year: 2000},
		{name: "lower year bound", day: 1, month: 1, year: MinYear},
		{name: "upper year bound", day: 31, month: 12, year: MaxYear},
		{name: "day zero", day: 0, month: 5, year: 1990, expectedErr: ErrDayOutOfRange},
		{name: "day 32", day: 32, month: 5, year: 1990, expectedErr: ErrDayOutOfRange},
		{name: "month 13", day: 1, month: 13, year: 1990, expectedErr: ErrMonthOutOfRange},
		{name: "month zero", day: 1, month: 0, year: 1990, expectedErr: ErrMonthOutOfRange},
		{name: "year too early", day: 1, month: 1, year: 1899, expectedErr: ErrYearOutOfRange},
		{name: "year too late", day: 1, month: 1, year: 2026, expectedErr: ErrYearOutOfRange},
		{name: "april has 30 days", day: 31, month: 4, year: 1990, expectedErr: ErrDayNotInMonth},
		{name: "1900 is not a leap year", day: 29, month: 2, year: 1900, expectedErr: ErrDayNotInMonth},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBirthDate(tc.day, tc.month, tc.year)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, BirthDate{Day: tc.day, Month: tc.month, Year: tc.year}, b)
		})
	}
}

func TestParseBirthDate(t *testing.T) {
	b, err := ParseBirthDate(" 15.05.1990 ")
	require.NoError(t, err)
	assert.Equal(t, "15.05.1990", b.String())

	b, err = ParseBirthDate("1.2.2001")
	require.NoError(t, err)
	assert.Equal(t, BirthDate{Day: 1, Month: 2, Year: 2001}, b)

	for _, bad := range []string{"", "15/05/1990", "15.05", "aa.bb.cccc", "15..1990", "15.05.1990.1"} {
		_, err := ParseBirthDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "input %q", bad)
	}

	_, err = ParseBirthDate("31.02.1990")
	assert.ErrorIs(t, err, ErrDayNotInMonth)
}

func TestAgeOn(t *testing.T) {
	b, err := NewBirthDate(31, 12, 1985)
	require.NoError(t, err)

	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 40, AgeOn(b, now), "age counts calendar years only")
	assert.Equal(t, Band40To60, BandForAge(AgeOn(b, now)))
}
