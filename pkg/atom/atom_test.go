package atom_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/cssmatch/pkg/arena"
	"github.com/flier/cssmatch/pkg/atom"
)

func TestTableIntern(t *testing.T) {
	Convey("Given an atom table", t, func() {
		table := atom.New(&arena.Arena{})

		Convey("When interning an empty string", func() {
			id, err := table.Intern(nil)

			Convey("Then it returns the null atom", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, atom.Null)
			})
		})

		Convey("When interning the same bytes twice", func() {
			first, err := table.InternString("container")
			So(err, ShouldBeNil)

			second, err := table.InternString("container")
			So(err, ShouldBeNil)

			Convey("Then both calls return the same id", func() {
				So(second, ShouldEqual, first)
			})
		})

		Convey("When interning two distinct strings", func() {
			a, err := table.InternString("div")
			So(err, ShouldBeNil)

			b, err := table.InternString("span")
			So(err, ShouldBeNil)

			Convey("Then they receive distinct ids", func() {
				So(a, ShouldNotEqual, b)
			})
		})

		Convey("When interning a string over the length limit", func() {
			huge := make([]byte, atom.MaxLen+1)

			_, err := table.Intern(huge)

			Convey("Then it fails with ErrStringTooLong", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, atom.ErrStringTooLong), ShouldBeTrue)
			})
		})

		Convey("When round-tripping through StringOf", func() {
			id, err := table.InternString("selector")
			So(err, ShouldBeNil)

			s, ok := table.StringOf(id)

			Convey("Then the original bytes come back", func() {
				So(ok, ShouldBeTrue)
				So(s, ShouldEqual, "selector")
			})
		})

		Convey("When querying StringOf for the null atom", func() {
			s, ok := table.StringOf(atom.Null)

			Convey("Then it reports absent", func() {
				So(ok, ShouldBeFalse)
				So(s, ShouldEqual, "")
			})
		})

		Convey("When querying StringOf for an out-of-range id", func() {
			s, ok := table.StringOf(atom.Id(9999))

			Convey("Then it reports absent", func() {
				So(ok, ShouldBeFalse)
				So(s, ShouldEqual, "")
			})
		})

		Convey("When querying HashOf for the null atom", func() {
			Convey("Then it returns 0", func() {
				So(table.HashOf(atom.Null), ShouldEqual, uint32(0))
			})
		})

		Convey("When querying HashOf for an interned atom", func() {
			id, err := table.InternString("flex")
			So(err, ShouldBeNil)

			Convey("Then it matches the standalone hash function", func() {
				So(table.HashOf(id), ShouldEqual, atom.HashString("flex"))
			})
		})

		Convey("When interning many distinct strings", func() {
			ids := make(map[atom.Id]bool)

			for i := 0; i < 500; i++ {
				id, err := table.InternString(string(rune('a'+i%26)) + string(rune(i)))
				So(err, ShouldBeNil)
				ids[id] = true
			}

			Convey("Then every id is distinct and Len reflects the count", func() {
				So(len(ids), ShouldEqual, table.Len())
			})
		})
	})
}

func TestHashConsistency(t *testing.T) {
	Convey("Given the standalone Hash function and an interned atom", t, func() {
		table := atom.New(&arena.Arena{})

		Convey("When interning a keyword", func() {
			id, err := table.InternString("container")
			So(err, ShouldBeNil)

			Convey("Then HashOf matches Hash over the same bytes", func() {
				So(table.HashOf(id), ShouldEqual, atom.Hash([]byte("container")))
			})
		})
	})
}
