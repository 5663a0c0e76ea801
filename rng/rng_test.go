package rng

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a seed", t, func() {
		Convey("When the seed is non-negative", func() {
			st := New(12345)
			So(st.Raw(), ShouldEqual, uint64(12345))
		})

		Convey("When the seed is negative", func() {
			st := New(-1)
			So(st.Raw(), ShouldEqual, ^uint64(0))
		})

		Convey("When the seed is zero", func() {
			st := New(0)
			So(st.Raw(), ShouldEqual, uint64(0))
		})
	})
}

func TestUniform(t *testing.T) {
	Convey("Given an initial state", t, func() {
		st := New(42)

		Convey("Uniform always returns a value in [0, 1)", func() {
			for i := 0; i < 10000; i++ {
				var u float64
				u, st = Uniform(st)
				So(u, ShouldBeGreaterThanOrEqualTo, 0.0)
				So(u, ShouldBeLessThan, 1.0)
			}
		})

		Convey("Uniform is a pure function: same state yields same output", func() {
			u1, s1 := Uniform(st)
			u2, s2 := Uniform(st)
			So(u1, ShouldEqual, u2)
			So(s1, ShouldResemble, s2)
		})

		Convey("Uniform advances the state deterministically", func() {
			_, s1 := Uniform(st)
			expected := st.s*multiplier + increment
			So(s1.Raw(), ShouldEqual, expected)
		})

		Convey("Two independent generators from the same seed produce identical streams", func() {
			a := New(2026)
			b := New(2026)
			for i := 0; i < 50; i++ {
				var ua, ub float64
				ua, a = Uniform(a)
				ub, b = Uniform(b)
				So(ua, ShouldEqual, ub)
			}
		})
	})
}
