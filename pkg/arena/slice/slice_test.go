package slice_test

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/cssmatch/pkg/arena"
	"github.com/flier/cssmatch/pkg/arena/slice"
)

func TestSliceOf(t *testing.T) {
	Convey("Given an arena", t, func() {
		a := &arena.Arena{}

		Convey("When creating a slice from values", func() {
			values := []int{1, 2, 3, 4, 5}
			s := slice.Of(a, values...)

			So(s.Len(), ShouldEqual, 5)
			So(s.Empty(), ShouldBeFalse)

			for i, expected := range values {
				So(s.Load(i), ShouldEqual, expected)
				So(*s.Get(i), ShouldEqual, expected)
			}

			Convey("Then it charges the arena for the backing storage", func() {
				So(a.Bytes(), ShouldBeGreaterThanOrEqualTo, 5*8)
			})

			Convey("Then it formats like a plain slice", func() {
				So(fmt.Sprint(s.Raw()), ShouldEqual, "[1 2 3 4 5]")
			})
		})

		Convey("When creating a slice from no values", func() {
			s := slice.Of[int](a)

			So(s.Len(), ShouldEqual, 0)
			So(s.Empty(), ShouldBeTrue)
		})

		Convey("When creating a slice from strings", func() {
			s := slice.Of(a, "hello", "world", "test")

			So(s.Len(), ShouldEqual, 3)
			So(s.Load(0), ShouldEqual, "hello")
			So(s.Load(1), ShouldEqual, "world")
			So(s.Load(2), ShouldEqual, "test")
		})
	})
}

func TestSliceMake(t *testing.T) {
	Convey("Given an arena", t, func() {
		a := &arena.Arena{}

		Convey("When making a slice with a specific length", func() {
			s := slice.Make[int](a, 10)

			So(s.Len(), ShouldEqual, 10)
			So(s.Load(0), ShouldEqual, 0)
		})

		Convey("When making a slice with zero length", func() {
			s := slice.Make[int](a, 0)

			So(s.Len(), ShouldEqual, 0)
			So(s.Empty(), ShouldBeTrue)
		})
	})
}

func TestSliceFromBytesAndString(t *testing.T) {
	Convey("Given an arena", t, func() {
		a := &arena.Arena{}

		Convey("When wrapping a byte slice", func() {
			s := slice.FromBytes(a, []byte("hello"))

			So(s.Len(), ShouldEqual, 5)
			So(string(s.Raw()), ShouldEqual, "hello")
		})

		Convey("When wrapping a string", func() {
			s := slice.FromString(a, "world")

			So(s.Len(), ShouldEqual, 5)
			So(string(s.Raw()), ShouldEqual, "world")
		})
	})
}

func TestSliceStore(t *testing.T) {
	Convey("Given a slice of ints", t, func() {
		a := &arena.Arena{}
		s := slice.Make[int](a, 3)

		Convey("When storing a value at an index", func() {
			s.Store(1, 42)

			Convey("Then loading that index returns the stored value", func() {
				So(s.Load(1), ShouldEqual, 42)
				So(s.Load(0), ShouldEqual, 0)
				So(s.Load(2), ShouldEqual, 0)
			})
		})
	})
}

func TestSliceCheckedLoad(t *testing.T) {
	Convey("Given a slice of 3 ints", t, func() {
		a := &arena.Arena{}
		s := slice.Make[int](a, 3)
		s.Store(1, 42)

		Convey("CheckedLoad at a valid index returns Some", func() {
			v := s.CheckedLoad(1)
			So(v.IsSome(), ShouldBeTrue)
			So(v.Unwrap(), ShouldEqual, 42)
		})

		Convey("CheckedLoad out of range returns None instead of panicking", func() {
			So(s.CheckedLoad(3).IsSome(), ShouldBeFalse)
			So(s.CheckedLoad(-1).IsSome(), ShouldBeFalse)
		})
	})
}

func TestSliceAppend(t *testing.T) {
	Convey("Given an empty slice", t, func() {
		a := &arena.Arena{}
		s := slice.Of[int](a)

		Convey("When appending values one at a time", func() {
			s = s.AppendOne(a, 1)
			s = s.AppendOne(a, 2)
			s = s.AppendOne(a, 3)

			Convey("Then the slice grows to hold them in order", func() {
				So(s.Len(), ShouldEqual, 3)
				So(s.Raw(), ShouldResemble, []int{1, 2, 3})
			})
		})

		Convey("When appending several values at once", func() {
			s = s.Append(a, 4, 5, 6)

			Convey("Then the slice holds all of them", func() {
				So(s.Len(), ShouldEqual, 3)
				So(s.Raw(), ShouldResemble, []int{4, 5, 6})
			})

			Convey("Then growth beyond the original capacity is charged to the arena", func() {
				So(a.Bytes(), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestSliceSlice(t *testing.T) {
	Convey("Given a slice of five ints", t, func() {
		a := &arena.Arena{}
		s := slice.Of(a, 10, 20, 30, 40, 50)

		Convey("When taking a sub-slice", func() {
			sub := s.Slice(1, 4)

			Convey("Then it exposes only that range, sharing the backing array", func() {
				So(sub.Len(), ShouldEqual, 3)
				So(sub.Raw(), ShouldResemble, []int{20, 30, 40})

				sub.Store(0, 99)
				So(s.Load(1), ShouldEqual, 99)
			})
		})
	})
}
