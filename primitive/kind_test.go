package primitive_test

import (
	"fmt"
	"reflect"
	"time"

	"propbind/primitive"
)

func Example() {
	type Celsius float64
	type Label string
	type Empty struct{}

	fmt.Println(primitive.Of(reflect.TypeOf(int(0))))
	fmt.Println(primitive.Of(reflect.TypeOf("")))
	fmt.Println(primitive.Of(reflect.TypeOf(Celsius(0))))
	fmt.Println(primitive.Of(reflect.TypeOf(Label(""))))
	fmt.Println(primitive.Of(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.Of(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.Of(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindFloat64
	// KindString
	// KindDuration
	// KindTime
	// KindEnum(0)
}
