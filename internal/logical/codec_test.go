package logical

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primait/avrogen/internal/schema"
)

func mustCodec(t *testing.T, l schema.Logical) Codec {
	t.Helper()
	c, err := For(l)
	require.NoError(t, err)
	return c
}

func TestWidth(t *testing.T) {
	tests := []struct {
		precision int
		want      int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{10, 5},
		{18, 8},
		{38, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Width(tt.precision), "precision %d", tt.precision)
	}
}

func TestMaxUnscaled(t *testing.T) {
	assert.Equal(t, "99", MaxUnscaled(2).String())
	assert.Equal(t, "999999999", MaxUnscaled(9).String())
	// 10^12 needs all 40 bits of five bytes, leaving no room for the sign
	assert.Equal(t, "549755813887", MaxUnscaled(12).String())
	assert.Equal(t, "0", MaxUnscaled(0).String())
}

func TestDecimal_EncodeFixedWidth(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Bytes, Kind: schema.Decimal, Precision: 2, Scale: 1})

	b, err := c.Encode(decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, []byte{15}, b)

	b, err = c.Encode(decimal.RequireFromString("-1.5"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF1}, b)
}

func TestDecimal_RoundsHalfAwayFromZero(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Bytes, Kind: schema.Decimal, Precision: 6, Scale: 2})

	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"-1.005", "-1.01"},
		{"2.344", "2.34"},
		{"7", "7"},
	}
	for _, tt := range tests {
		b, err := c.Encode(decimal.RequireFromString(tt.in))
		require.NoError(t, err, tt.in)
		require.Len(t, b, Width(6))

		out, err := c.Decode(b)
		require.NoError(t, err, tt.in)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(out.(decimal.Decimal)), "%s decoded to %s", tt.in, out)
	}
}

func TestDecimal_Overflow(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Bytes, Kind: schema.Decimal, Precision: 2, Scale: 0})

	_, err := c.Encode(decimal.NewFromInt(200))
	require.Error(t, err)
	assert.True(t, IsError(err))
}

func TestDecimal_DecodeErrors(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Bytes, Kind: schema.Decimal, Precision: 2, Scale: 0})

	_, err := c.Decode([]byte{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad decimal width")

	_, err = c.Decode([]byte{})
	require.Error(t, err)

	_, err = c.Decode("12")
	require.Error(t, err)
	assert.True(t, IsError(err))
}

func TestDecimal_ShorterInputSignExtends(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Bytes, Kind: schema.Decimal, Precision: 10, Scale: 2})

	out, err := c.Decode([]byte{0xFF})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-0.01").Equal(out.(decimal.Decimal)))
}

func TestDecimalString(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.String, Kind: schema.DecimalString})

	s, err := c.Encode(decimal.RequireFromString("12.34"))
	require.NoError(t, err)
	assert.Equal(t, "12.34", s)

	out, err := c.Decode("12.34")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.34").Equal(out.(decimal.Decimal)))

	_, err = c.Decode("twelve")
	require.Error(t, err)
}

func TestUUID(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.String, Kind: schema.UUID})

	const id = "f81d4fae-7dec-11d0-a765-00a0c91e6bf6"
	out, err := c.Encode(id)
	require.NoError(t, err)
	assert.Equal(t, id, out)

	out, err = c.Decode(id)
	require.NoError(t, err)
	assert.Equal(t, id, out)

	_, err = c.Encode("not-a-uuid")
	require.Error(t, err)
	_, err = c.Decode("not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, NilUUID, c.Zero())
}

func TestDate(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Int, Kind: schema.Date})

	d := Date{Year: 1970, Month: time.January, Day: 11}
	out, err := c.Encode(d)
	require.NoError(t, err)
	assert.Equal(t, 10, out)

	back, err := c.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, d, back)

	before, err := c.Encode(Date{Year: 1969, Month: time.December, Day: 31})
	require.NoError(t, err)
	assert.Equal(t, -1, before)

	_, err = c.Decode(10.0)
	require.Error(t, err, "floats are not dates")
	assert.Equal(t, EpochDate, c.Zero())
}

func TestDate_RejectsInstants(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Int, Kind: schema.Date})

	_, err := c.Encode(time.Date(2024, 5, 6, 13, 14, 15, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, IsError(err))

	// a timestamp-millis value does not fit the int range of a date
	_, err = c.Decode(time.Date(2024, 5, 6, 13, 14, 15, 0, time.UTC).UnixMilli())
	require.Error(t, err)
}

func TestDateString(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.String, Kind: schema.DateString})

	out, err := c.Encode(Date{Year: 2024, Month: time.February, Day: 29})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", out)

	back, err := c.Decode("0987-03-04")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 987, Month: time.March, Day: 4}, back)

	_, err = c.Decode("2023-02-29")
	require.Error(t, err)
	_, err = c.Encode(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}

func TestDateOf(t *testing.T) {
	zone := time.FixedZone("", -5*60*60)
	assert.Equal(t, Date{Year: 2024, Month: time.May, Day: 5}, DateOf(time.Date(2024, 5, 5, 22, 0, 0, 0, zone)))
	assert.Equal(t, Date{Year: 1969, Month: time.December, Day: 31}, DateFromDays(-1))
	assert.Equal(t, int64(19849), Date{Year: 2024, Month: time.May, Day: 6}.Days())
}

func TestDatetimeString_PreservesOffset(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.String, Kind: schema.DatetimeString})

	zone := time.FixedZone("", 2*60*60)
	in := time.Date(2024, 5, 1, 10, 30, 0, 0, zone)

	out, err := c.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T10:30:00+02:00", out)

	back, err := c.Decode(out)
	require.NoError(t, err)
	bt := back.(time.Time)
	assert.True(t, in.Equal(bt))
	_, offset := bt.Zone()
	assert.Equal(t, 2*60*60, offset)
}

func TestTimeOfDay(t *testing.T) {
	ms := mustCodec(t, schema.Logical{Underlying: schema.Int, Kind: schema.TimeMillis})
	us := mustCodec(t, schema.Logical{Underlying: schema.Long, Kind: schema.TimeMicros})

	d := 13*time.Hour + 5*time.Minute + 1500*time.Microsecond

	out, err := ms.Encode(d)
	require.NoError(t, err)
	assert.Equal(t, int((13*time.Hour+5*time.Minute+time.Millisecond)/time.Millisecond), out)

	out, err = us.Encode(d)
	require.NoError(t, err)
	assert.Equal(t, int64(d/time.Microsecond), out)

	back, err := us.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestTimestamp(t *testing.T) {
	ms := mustCodec(t, schema.Logical{Underlying: schema.Long, Kind: schema.TimestampMillis})
	us := mustCodec(t, schema.Logical{Underlying: schema.Long, Kind: schema.TimestampMicros})

	in := time.Date(2021, 7, 4, 12, 0, 0, 123456000, time.UTC)

	out, err := ms.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, in.UnixMilli(), out)

	out, err = us.Encode(in)
	require.NoError(t, err)
	back, err := us.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, in, back)

	_, err = ms.Decode("1625400000000")
	require.Error(t, err)
}

func TestLocalTimestamp_UsesWallClock(t *testing.T) {
	c := mustCodec(t, schema.Logical{Underlying: schema.Long, Kind: schema.LocalTimestampMillis})

	zone := time.FixedZone("", -5*60*60)
	in := time.Date(2021, 7, 4, 12, 0, 0, 0, zone)

	out, err := c.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 7, 4, 12, 0, 0, 0, time.UTC).UnixMilli(), out)

	back, err := c.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 7, 4, 12, 0, 0, 0, time.UTC), back)
}

func TestEncode_WrongNativeType(t *testing.T) {
	kinds := []schema.Logical{
		{Underlying: schema.Bytes, Kind: schema.Decimal, Precision: 4},
		{Underlying: schema.Int, Kind: schema.Date},
		{Underlying: schema.Int, Kind: schema.TimeMillis},
		{Underlying: schema.Long, Kind: schema.TimestampMicros},
		{Underlying: schema.String, Kind: schema.UUID},
	}
	for _, l := range kinds {
		c := mustCodec(t, l)
		_, err := c.Encode(struct{}{})
		require.Error(t, err, l.Kind)
		assert.True(t, IsError(err), l.Kind)
	}
}
