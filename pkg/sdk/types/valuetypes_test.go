package types

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestBooleanCastIsStrict(t *testing.T) {
	is := is.New(t)
	bt := BooleanType{}

	v, err := bt.Cast(true)
	is.NoErr(err)
	is.Equal(v, true)

	v, err = bt.Cast(false)
	is.NoErr(err)
	is.Equal(v, false)

	v, err = bt.Cast(nil)
	is.NoErr(err)
	is.Equal(v, nil)

	_, err = bt.Cast(1)
	is.True(errors.Is(err, ErrCoercion)) // integers are not booleans

	_, err = bt.Cast("true")
	is.True(errors.Is(err, ErrCoercion)) // strings are not booleans
}

func TestCoercionErrorNamesValueAndTarget(t *testing.T) {
	is := is.New(t)

	_, err := BooleanType{}.Cast(1)

	var ce *CoercionError
	is.True(errors.As(err, &ce))
	is.Equal(ce.Value, 1)
	is.Equal(ce.Target, Boolean)
	is.Equal(err.Error(), "unable to cast 1 (int) to boolean: must be either true or false")
}

func TestUnixTimestampFromStringAndNumberAreEqual(t *testing.T) {
	is := is.New(t)
	ut := UnixTimestampType{}

	fromString, err := ut.Cast("1700000000")
	is.NoErr(err)

	fromInt, err := ut.Cast(1700000000)
	is.NoErr(err)

	fromFloat, err := ut.Cast(float64(1700000000))
	is.NoErr(err)

	is.Equal(fromString, fromInt)
	is.Equal(fromInt, fromFloat)
	is.Equal(fromInt.(time.Time), time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC))
}

func TestUnixTimestampPassesThroughTimes(t *testing.T) {
	is := is.New(t)

	now := time.Now()
	v, err := UnixTimestampType{}.Cast(now)

	is.NoErr(err)
	is.Equal(v, now)
}

func TestUnixTimestampRejectsGarbage(t *testing.T) {
	is := is.New(t)
	ut := UnixTimestampType{}

	_, err := ut.Cast("yesterday")
	is.True(errors.Is(err, ErrCoercion))

	_, err = ut.Cast([]string{"1"})
	is.True(errors.Is(err, ErrCoercion))

	for _, v := range []any{math.NaN(), math.Inf(1), math.Inf(-1), 1e19, math.Pow(2, 63)} {
		_, err = ut.Cast(v)
		is.True(errors.Is(err, ErrCoercion)) // non finite or out of range seconds
	}
}

func TestDateCastAndSerialize(t *testing.T) {
	is := is.New(t)
	dt := DateType{}

	v, err := dt.Cast("2021-06-24")
	is.NoErr(err)
	is.Equal(v, time.Date(2021, time.June, 24, 0, 0, 0, 0, time.UTC))

	s, err := dt.Serialize(v)
	is.NoErr(err)
	is.Equal(s, "2021-06-24")

	_, err = dt.Cast("24/06/2021")
	is.True(errors.Is(err, ErrCoercion))
}

func TestIntegerCast(t *testing.T) {
	is := is.New(t)
	it := IntegerType{}

	v, err := it.Cast(float64(42))
	is.NoErr(err)
	is.Equal(v, int64(42))

	v, err = it.Cast("17")
	is.NoErr(err)
	is.Equal(v, int64(17))

	v, err = it.Cast(json.Number("99"))
	is.NoErr(err)
	is.Equal(v, int64(99))

	_, err = it.Cast(4.5)
	is.True(errors.Is(err, ErrCoercion)) // fractions are not integers

	_, err = it.Cast("seventeen")
	is.True(errors.Is(err, ErrCoercion))

	for _, v := range []any{math.Pow(2, 63), -1e19, math.NaN(), math.Inf(1), json.Number("1e19")} {
		_, err = it.Cast(v)
		is.True(errors.Is(err, ErrCoercion)) // does not fit in an int64
	}

	v, err = it.Cast(-math.Pow(2, 63))
	is.NoErr(err)
	is.Equal(v, int64(math.MinInt64))
}

func TestFloatCast(t *testing.T) {
	is := is.New(t)
	ft := FloatType{}

	v, err := ft.Cast(3)
	is.NoErr(err)
	is.Equal(v, float64(3))

	v, err = ft.Cast("2.5")
	is.NoErr(err)
	is.Equal(v, 2.5)

	_, err = ft.Cast(true)
	is.True(errors.Is(err, ErrCoercion))

	for _, v := range []any{"NaN", "Inf", math.NaN(), math.Inf(-1)} {
		_, err = ft.Cast(v)
		is.True(errors.Is(err, ErrCoercion))
	}
}

func TestStringCast(t *testing.T) {
	is := is.New(t)
	st := StringType{}

	v, err := st.Cast(12)
	is.NoErr(err)
	is.Equal(v, "12")

	v, err = st.Cast(1.25)
	is.NoErr(err)
	is.Equal(v, "1.25")

	_, err = st.Cast(map[string]any{"a": 1})
	is.True(errors.Is(err, ErrCoercion)) // objects do not silently become strings
}

func TestHashCastFromJSONString(t *testing.T) {
	is := is.New(t)
	ht := HashType{}

	v, err := ht.Cast(`{"a":"b"}`)
	is.NoErr(err)
	is.Equal(v, map[string]any{"a": "b"})

	_, err = ht.Cast(`not json`)
	is.True(errors.Is(err, ErrCoercion))

	_, err = ht.Cast(17)
	is.True(errors.Is(err, ErrCoercion))

	v, err = ht.Cast(`null`)
	is.NoErr(err)
	is.True(v == nil) // a json null is no hash at all
}

func TestBuiltinTypesRoundTrip(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	samples := map[string][]any{
		Hash:          {map[string]any{"k": "v", "n": float64(1)}},
		UnixTimestamp: {time.Unix(1600000000, 0).UTC()},
		Date:          {time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC)},
		String:        {"", "hello"},
		Integer:       {int64(0), int64(-12)},
		Boolean:       {true, false},
		Float:         {0.5, float64(-3)},
	}

	for tag, values := range samples {
		vt, err := r.Lookup(tag)
		is.NoErr(err)

		for _, value := range values {
			wire, err := vt.Serialize(value)
			is.NoErr(err)

			back, err := vt.Cast(wire)
			is.NoErr(err)
			is.Equal(back, value) // cast(serialize(x)) should equal x
		}
	}
}

func TestCastOfNilIsNil(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	for _, tag := range r.Tags() {
		vt, _ := r.Lookup(tag)
		v, err := vt.Cast(nil)
		is.NoErr(err)
		is.Equal(v, nil)
	}
}
