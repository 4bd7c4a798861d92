package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/cssmatch/pkg/arena"
)

func TestRecycled(t *testing.T) {
	Convey("Given a Recycled allocator", t, func() {
		a := new(arena.Recycled)

		Convey("When charging bytes", func() {
			a.Charge(256)

			Convey("Then it reports the live total and a matching high-water mark", func() {
				So(a.Bytes(), ShouldEqual, 256)
				So(a.HighWaterMark(), ShouldEqual, 256)
			})

			Convey("When reset", func() {
				a.Reset()

				Convey("Then live bytes are forgotten but the high-water mark is retained", func() {
					So(a.Bytes(), ShouldEqual, 0)
					So(a.HighWaterMark(), ShouldEqual, 256)
				})

				Convey("When charging less than the prior high-water mark", func() {
					a.Charge(64)

					Convey("Then the high-water mark does not shrink", func() {
						So(a.Bytes(), ShouldEqual, 64)
						So(a.HighWaterMark(), ShouldEqual, 256)
					})
				})

				Convey("When charging more than the prior high-water mark", func() {
					a.Charge(512)

					Convey("Then the high-water mark grows", func() {
						So(a.HighWaterMark(), ShouldEqual, 512)
					})
				})
			})
		})
	})
}

func TestRecycledSatisfiesAllocator(t *testing.T) {
	Convey("Given a Recycled used as an Allocator", t, func() {
		var a arena.Allocator = new(arena.Recycled)

		a.Charge(32)

		So(a.(*arena.Recycled).Bytes(), ShouldEqual, 32)
	})
}
