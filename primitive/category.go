package primitive

type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})
	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		conversionPairs[category] = map[ConversionPair]struct{}{}
	}

	add := func(category CategoryEnum, from, to KindEnum) {
		conversionPairs[category][ConversionPair{from, to}] = struct{}{}
	}

	for from := KindEnum(1); int(from) < KindTotal; from++ {
		if from.IsNumber() {
			for to := KindEnum(1); int(to) < KindTotal; to++ {
				if !to.IsNumber() {
					continue
				}

				if isSafeNumber(from, to) {
					add(CategorySafeNumber, from, to)
				} else {
					add(CategoryUnsafeNumber, from, to)
				}
			}

			add(CategoryTextNumber, from, KindString)
			add(CategoryTextNumber, KindString, from)
		}

		if from.IsInteger() {
			add(CategoryNumericBool, from, KindBool)
			add(CategoryNumericBool, KindBool, from)
			add(CategoryTimestamp, from, KindTime)
			add(CategoryTimestamp, KindTime, from)

			// uint64 nanoseconds would overflow time.Duration
			if from != KindUint64 {
				add(CategoryNanoseconds, from, KindDuration)
				add(CategoryNanoseconds, KindDuration, from)
			}
		}

		if from.IsFloat() {
			add(CategorySeconds, from, KindDuration)
			add(CategorySeconds, KindDuration, from)
		}
	}

	add(CategoryTextualBool, KindString, KindBool)
	add(CategoryTextualBool, KindBool, KindString)
	add(CategoryDatetime, KindString, KindTime)
	add(CategoryDatetime, KindTime, KindString)
	add(CategoryDuration, KindString, KindDuration)
	add(CategoryDuration, KindDuration, KindString)
}

// isSafeNumber reports whether every value of from is representable in to.
// Platform sized int and uint count as 64 bits wide when read and 32 bits
// wide when written, so that the answer holds on every platform.
func isSafeNumber(from, to KindEnum) bool {
	if from == to {
		return true
	}

	switch {
	case from.IsFloat():
		return from == KindFloat32 && to == KindFloat64
	case to.IsFloat():
		return readBits(from) <= to.mantissa()
	case from.IsSigned():
		return to.IsSigned() && writeBits(to) >= readBits(from)
	case to.IsSigned():
		return writeBits(to) > readBits(from)
	default:
		return writeBits(to) >= readBits(from)
	}
}

func readBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 64
	}

	return k.Bits()
}

func writeBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 32
	}

	return k.Bits()
}

// Category returns the category a conversion pair belongs to, or CategoryNone.
func Category(pair ConversionPair) CategoryEnum {
	for category, pairs := range conversionPairs {
		if _, ok := pairs[pair]; ok {
			return category
		}
	}

	return CategoryNone
}

// Allowed reports whether the pair is part of any category in allowed.
func Allowed(pair ConversionPair, allowed CategoryEnum) bool {
	return Category(pair)&allowed != 0
}
