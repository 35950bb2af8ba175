package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"propbind/internal/common"
)

var (
	ErrNotPrimitive = errors.New("type is not a primitive")
	ErrNotAllowed   = errors.New("conversion category is not allowed")
	ErrOutOfRange   = errors.New("value is out of range")
)

// Convert converts a primitive value into dst, provided the pair of kinds
// belongs to one of the allowed categories. Named types are supported on both
// sides: the result always has exactly the dst type.
func Convert(src reflect.Value, dst reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if !src.IsValid() || dst == nil {
		return reflect.Value{}, ErrNotPrimitive
	}

	pair := ConversionPair{Of(src.Type()), Of(dst)}
	if pair.From == 0 || pair.To == 0 {
		return reflect.Value{}, fmt.Errorf("%s to %s: %w", src.Type(), dst, ErrNotPrimitive)
	}

	if !Allowed(pair, allowed) {
		return reflect.Value{}, fmt.Errorf("%s to %s: %w", pair.From, pair.To, ErrNotAllowed)
	}

	out := reflect.New(dst).Elem()
	if err := convertInto(src, pair, out); err != nil {
		return reflect.Value{}, fmt.Errorf("%s to %s: %w", src.Type(), dst, err)
	}

	return out, nil
}

// CanConvert reports whether Convert accepts the pair of types.
func CanConvert(src, dst reflect.Type, allowed CategoryEnum) bool {
	pair := ConversionPair{Of(src), Of(dst)}
	if pair.From == 0 || pair.To == 0 {
		return false
	}

	return Allowed(pair, allowed)
}

func convertInto(src reflect.Value, pair ConversionPair, out reflect.Value) error {
	from, to := pair.From, pair.To

	switch {
	case from == to && from != KindTime:
		out.Set(src.Convert(out.Type()))
		return nil

	case from.IsNumber() && to.IsNumber():
		return setNumber(src, from, out, to)

	case from.IsNumber() && to == KindString:
		out.SetString(formatNumber(src, from))
		return nil

	case from == KindString && to.IsNumber():
		return parseNumber(strings.TrimSpace(src.String()), out, to)

	case from.IsInteger() && to == KindBool:
		i, err := asFloat(src, from)
		out.SetBool(i != 0)
		return err

	case from == KindBool && to.IsInteger():
		n := 0
		if src.Bool() {
			n = 1
		}
		return setNumber(reflect.ValueOf(n), KindInt, out, to)

	case from == KindString && to == KindBool:
		b, err := parseBool(src.String())
		out.SetBool(b)
		return err

	case from == KindBool && to == KindString:
		out.SetString(strconv.FormatBool(src.Bool()))
		return nil

	case from == KindTime:
		return fromTime(src.Interface().(time.Time), out, to)

	case to == KindTime:
		return toTime(src, from, out)

	case from == KindDuration:
		return fromDuration(time.Duration(src.Int()), out, to)

	case to == KindDuration:
		return toDuration(src, from, out)
	}

	return ErrNotPrimitive
}

func setNumber(src reflect.Value, from KindEnum, out reflect.Value, to KindEnum) error {
	switch {
	case to.IsSigned():
		i, err := asInt(src, from)
		if err != nil {
			return err
		}
		if out.OverflowInt(i) {
			return ErrOutOfRange
		}
		out.SetInt(i)

	case to.IsUnsigned():
		u, err := asUint(src, from)
		if err != nil {
			return err
		}
		if out.OverflowUint(u) {
			return ErrOutOfRange
		}
		out.SetUint(u)

	default:
		f, err := asFloat(src, from)
		if err != nil {
			return err
		}
		if out.OverflowFloat(f) {
			return ErrOutOfRange
		}
		out.SetFloat(f)
	}

	return nil
}

func asInt(src reflect.Value, from KindEnum) (int64, error) {
	switch {
	case from.IsSigned():
		return src.Int(), nil
	case from.IsUnsigned():
		u := src.Uint()
		if !common.InRange(0, u, math.MaxInt64) {
			return 0, ErrOutOfRange
		}
		return int64(u), nil
	default:
		f := src.Float()
		if math.IsNaN(f) || !common.InRange(math.MinInt64, f, math.MaxInt64) {
			return 0, ErrOutOfRange
		}
		return int64(f), nil
	}
}

func asUint(src reflect.Value, from KindEnum) (uint64, error) {
	switch {
	case from.IsUnsigned():
		return src.Uint(), nil
	case from.IsSigned():
		i := src.Int()
		if i < 0 {
			return 0, ErrOutOfRange
		}
		return uint64(i), nil
	default:
		f := src.Float()
		if math.IsNaN(f) || !common.InRange(0, f, math.MaxUint64) {
			return 0, ErrOutOfRange
		}
		return uint64(f), nil
	}
}

func asFloat(src reflect.Value, from KindEnum) (float64, error) {
	switch {
	case from.IsSigned():
		return float64(src.Int()), nil
	case from.IsUnsigned():
		return float64(src.Uint()), nil
	case from.IsFloat():
		return src.Float(), nil
	default:
		return 0, ErrNotPrimitive
	}
}

func formatNumber(src reflect.Value, from KindEnum) string {
	switch {
	case from.IsSigned():
		return strconv.FormatInt(src.Int(), 10)
	case from.IsUnsigned():
		return strconv.FormatUint(src.Uint(), 10)
	default:
		return strconv.FormatFloat(src.Float(), 'f', -1, from.Bits())
	}
}

func parseNumber(s string, out reflect.Value, to KindEnum) error {
	switch {
	case to.IsSigned():
		i, err := strconv.ParseInt(s, 10, to.Bits())
		if err != nil {
			return err
		}
		out.SetInt(i)

	case to.IsUnsigned():
		u, err := strconv.ParseUint(s, 10, to.Bits())
		if err != nil {
			return err
		}
		out.SetUint(u)

	default:
		f, err := strconv.ParseFloat(s, to.Bits())
		if err != nil {
			return err
		}
		out.SetFloat(f)
	}

	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on", "y":
		return true, nil
	case "no", "off", "n", "":
		return false, nil
	}

	return strconv.ParseBool(strings.TrimSpace(s))
}

func fromTime(t time.Time, out reflect.Value, to KindEnum) error {
	switch {
	case to == KindTime:
		out.Set(reflect.ValueOf(t).Convert(out.Type()))
		return nil
	case to == KindString:
		out.SetString(t.Format(time.RFC3339Nano))
		return nil
	case to.IsInteger():
		return setNumber(reflect.ValueOf(t.Unix()), KindInt64, out, to)
	}

	return ErrNotPrimitive
}

func toTime(src reflect.Value, from KindEnum, out reflect.Value) error {
	var t time.Time

	switch {
	case from == KindString:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(src.String()))
		if err != nil {
			return err
		}
		t = parsed
	case from.IsInteger():
		sec, err := asInt(src, from)
		if err != nil {
			return err
		}
		t = time.Unix(sec, 0).UTC()
	default:
		return ErrNotPrimitive
	}

	out.Set(reflect.ValueOf(t))
	return nil
}

func fromDuration(d time.Duration, out reflect.Value, to KindEnum) error {
	switch {
	case to == KindString:
		out.SetString(d.String())
		return nil
	case to.IsFloat():
		return setNumber(reflect.ValueOf(d.Seconds()), KindFloat64, out, to)
	case to.IsInteger():
		return setNumber(reflect.ValueOf(int64(d)), KindInt64, out, to)
	}

	return ErrNotPrimitive
}

func toDuration(src reflect.Value, from KindEnum, out reflect.Value) error {
	switch {
	case from == KindString:
		d, err := time.ParseDuration(strings.TrimSpace(src.String()))
		if err != nil {
			return err
		}
		out.SetInt(int64(d))
	case from.IsFloat():
		ns := src.Float() * float64(time.Second)
		if math.IsNaN(ns) || !common.InRange(math.MinInt64, ns, math.MaxInt64) {
			return ErrOutOfRange
		}
		out.SetInt(int64(ns))
	case from.IsInteger():
		ns, err := asInt(src, from)
		if err != nil {
			return err
		}
		out.SetInt(ns)
	default:
		return ErrNotPrimitive
	}

	return nil
}
